package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Config is an opaque JSON object attached to a project. A config is either
// absent - the caller didn't supply one, so an upsert must leave whatever
// is already stored untouched - or present, even if its value is the empty
// object. Only a present config has bytes to bind; Bytes() returns nil for
// an absent one so the repository layer can pass true SQL NULL through to
// Postgres's COALESCE.
type Config struct {
	raw     json.RawMessage
	present bool
}

// NewConfig validates raw as a JSON object (or null) and wraps it as
// present. A nil raw means "absent", not "null" - use AbsentConfig to be
// explicit, or EmptyConfig for a present-but-empty object.
func NewConfig(raw []byte) (Config, error) {
	if raw == nil {
		return AbsentConfig(), nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return Config{}, fmt.Errorf("invalid project config json: %w", err)
	}
	if _, isObject := v.(map[string]interface{}); !isObject && v != nil {
		return Config{}, fmt.Errorf("project config must be a JSON object")
	}
	trimmed := bytes.TrimSpace(raw)
	return Config{raw: append(json.RawMessage(nil), trimmed...), present: true}, nil
}

// EmptyConfig returns a present config holding the empty object.
func EmptyConfig() Config { return Config{raw: json.RawMessage(`{}`), present: true} }

// AbsentConfig returns a config with no value at all: an upsert carrying
// this must preserve whatever config is already stored.
func AbsentConfig() Config { return Config{} }

// Present reports whether a config value was actually supplied.
func (c Config) Present() bool { return c.present }

func (c Config) MarshalJSON() ([]byte, error) {
	if !c.present || len(c.raw) == 0 {
		return []byte(`{}`), nil
	}
	return c.raw, nil
}

func (c *Config) UnmarshalJSON(data []byte) error {
	cfg, err := NewConfig(data)
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}

// Bytes returns the raw JSON bytes, suitable for storing in a JSONB column,
// or nil when the config is absent - the repository layer binds that nil as
// SQL NULL so an upsert's COALESCE preserves the existing stored config.
func (c Config) Bytes() []byte {
	if !c.present {
		return nil
	}
	if len(c.raw) == 0 {
		return []byte(`{}`)
	}
	return c.raw
}
