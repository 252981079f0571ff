// Package broker publishes config-update notifications to the
// "kotosiro.updates.config" fanout exchange whenever a project or job
// definition changes, so runner instances can refresh their caches.
package broker

import "github.com/streadway/amqp"

// Connection abstracts an AMQP connection so Client can be exercised
// against a mock in tests without a broker.
type Connection interface {
	Channel() (Channel, error)
	Close() error
}

// Channel abstracts the subset of amqp.Channel the broker needs: exchange
// declaration and publish.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Dialer abstracts connecting to a broker, allowing tests to inject a fake.
type Dialer interface {
	Dial(url string) (Connection, error)
}

type realConnection struct{ conn *amqp.Connection }

func (r *realConnection) Channel() (Channel, error) {
	ch, err := r.conn.Channel()
	if err != nil {
		return nil, err
	}
	return &realChannel{ch: ch}, nil
}

func (r *realConnection) Close() error { return r.conn.Close() }

type realChannel struct{ ch *amqp.Channel }

func (r *realChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return r.ch.ExchangeDeclare(name, kind, durable, autoDelete, internal, noWait, args)
}

func (r *realChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return r.ch.Publish(exchange, key, mandatory, immediate, msg)
}

func (r *realChannel) Close() error { return r.ch.Close() }

// RealDialer dials a live AMQP broker.
type RealDialer struct{}

func (RealDialer) Dial(url string) (Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return &realConnection{conn: conn}, nil
}
