package broker

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ConfigUpdatesExchange is the durable fanout exchange runner instances
// subscribe to for project and job change notifications.
const ConfigUpdatesExchange = "kotosiro.updates.config"

// ConfigUpdateKind distinguishes which aggregate changed.
type ConfigUpdateKind string

const (
	ConfigUpdateProject ConfigUpdateKind = "Project"
	ConfigUpdateJob     ConfigUpdateKind = "Job"
)

// ConfigUpdate is an externally tagged union over the updated aggregate's
// id, serialized as {"Project":"<uuid>"} or {"Job":"<uuid>"}.
type ConfigUpdate struct {
	Kind ConfigUpdateKind
	ID   uuid.UUID
}

func (u ConfigUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{string(u.Kind): u.ID.String()})
}

func (u *ConfigUpdate) UnmarshalJSON(data []byte) error {
	var tagged map[string]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	for kind, rawID := range tagged {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return fmt.Errorf("failed to parse config update id %q: %w", rawID, err)
		}
		u.Kind = ConfigUpdateKind(kind)
		u.ID = id
		return nil
	}
	return fmt.Errorf("config update payload carried no variant")
}
