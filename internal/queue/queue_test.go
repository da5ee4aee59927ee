package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryPublishConsume(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := NewInMemory(4)
	require.NoError(t, q.Publish(ctx, Message{Type: "clock_in", Body: []byte("jane")}))

	messages, err := q.Consume(ctx)
	require.NoError(t, err)

	msg := <-messages
	assert.Equal(t, "clock_in", msg.Type)
	assert.Equal(t, "jane", string(msg.Body))
}

func TestSerializeRoundTrip(t *testing.T) {
	msg := Message{Type: "clock_out", Body: []byte(`{"intern_id":"jane@example.com"}`)}
	got, err := deserialize(serialize(msg))
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}
