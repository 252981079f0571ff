package broker

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Client publishes config updates to the fanout exchange. Publish failures
// are logged and swallowed: a runner missing one notification will pick up
// the change on its next poll, and the request that triggered the update
// must not fail because of it.
type Client struct {
	channel Channel
	log     *logrus.Entry
}

// NewClient declares the durable fanout exchange on ch and returns a Client
// bound to it.
func NewClient(ch Channel, log *logrus.Entry) (*Client, error) {
	if err := ch.ExchangeDeclare(ConfigUpdatesExchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %q: %w", ConfigUpdatesExchange, err)
	}
	return &Client{channel: ch, log: log}, nil
}

// PublishProject announces that project id's definition changed.
func (c *Client) PublishProject(id uuid.UUID) {
	c.publish(ConfigUpdate{Kind: ConfigUpdateProject, ID: id})
}

// PublishJob announces that job id's definition changed.
func (c *Client) PublishJob(id uuid.UUID) {
	c.publish(ConfigUpdate{Kind: ConfigUpdateJob, ID: id})
}

func (c *Client) publish(update ConfigUpdate) {
	body, err := json.Marshal(update)
	if err != nil {
		c.log.WithError(err).Warn("failed to encode config update")
		return
	}
	err = c.channel.Publish(ConfigUpdatesExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		c.log.WithError(err).Warn("failed to publish config update")
	}
}
