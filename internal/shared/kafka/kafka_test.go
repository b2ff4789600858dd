package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (c *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	c.msgs = append(c.msgs, msgs...)
	return c.err
}

func TestWriteJSON(t *testing.T) {
	w := &captureWriter{}
	require.NoError(t, WriteJSON(context.Background(), w, "u1", []byte(`{"ok":true}`)))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "u1", string(w.msgs[0].Key))
	assert.JSONEq(t, `{"ok":true}`, string(w.msgs[0].Value))
	assert.False(t, w.msgs[0].Time.IsZero())

	boom := errors.New("broker down")
	assert.ErrorIs(t, WriteJSON(context.Background(), &captureWriter{err: boom}, "u1", nil), boom)
}

func TestBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, Brokers("a:9092, b:9092,"))
	assert.Nil(t, Brokers(""))
}

func TestNewWriter(t *testing.T) {
	w := NewWriter("a:9092,b:9092", "bet_settled")
	assert.Equal(t, "bet_settled", w.Topic)
	assert.NotNil(t, w.Addr)
	assert.True(t, w.AllowAutoTopicCreation)
}
