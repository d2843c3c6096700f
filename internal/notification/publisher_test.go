package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_KeysByEventID(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w}

	start := time.Date(2024, 4, 13, 18, 0, 0, 0, time.UTC)
	err := p.Publish(context.Background(), Notice{Kind: EventCreated, EventID: 7, EventName: "Baisakhi Celebration", StartTime: &start})
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "7", string(w.msgs[0].Key))
	assert.Equal(t, "kind", w.msgs[0].Headers[0].Key)
	assert.Equal(t, string(EventCreated), string(w.msgs[0].Headers[0].Value))

	var got Notice
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "Baisakhi Celebration", got.EventName)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestKafkaPublisher_WrapsWriteError(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaPublisher{writer: &recordingWriter{err: boom}}

	err := p.Publish(context.Background(), Notice{Kind: EventDeleted, EventID: 1})
	assert.ErrorIs(t, err, boom)
}

func TestNew_WithoutBrokersIsNop(t *testing.T) {
	p := New(nil, "alumni-portal.events")
	_, ok := p.(NopPublisher)
	assert.True(t, ok)
	assert.NoError(t, p.Publish(context.Background(), Notice{Kind: EventUpdated}))
	assert.NoError(t, p.Close())
}
