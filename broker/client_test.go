package broker

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declaredName string
	declaredKind string
	declaredDur  bool
	published    []amqp.Publishing
	publishErr   error
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declaredName = name
	f.declaredKind = kind
	f.declaredDur = durable
	return nil
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestNewClientDeclaresDurableFanout(t *testing.T) {
	ch := &fakeChannel{}
	_, err := NewClient(ch, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, ConfigUpdatesExchange, ch.declaredName)
	assert.Equal(t, amqp.ExchangeFanout, ch.declaredKind)
	assert.True(t, ch.declaredDur)
}

func TestPublishProjectEncodesTaggedVariant(t *testing.T) {
	ch := &fakeChannel{}
	c, err := NewClient(ch, discardLogger())
	require.NoError(t, err)

	id := uuid.New()
	c.PublishProject(id)
	require.Len(t, ch.published, 1)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &decoded))
	assert.Equal(t, id.String(), decoded["Project"])
}

func TestPublishJobFailureIsSwallowed(t *testing.T) {
	ch := &fakeChannel{publishErr: assert.AnError}
	c, err := NewClient(ch, discardLogger())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		c.PublishJob(uuid.New())
	})
}

func TestConfigUpdateRoundTrip(t *testing.T) {
	id := uuid.New()
	u := ConfigUpdate{Kind: ConfigUpdateJob, ID: id}
	data, err := json.Marshal(u)
	require.NoError(t, err)

	var decoded ConfigUpdate
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, u, decoded)
}
