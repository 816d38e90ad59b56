package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

type fakeWriter struct {
	written []kafkago.Message
	err     error
	closed  bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func sampleEvent() types.SearchEvent {
	return types.SearchEvent{
		ID:           uuid.MustParse("6f1c1f7e-8f0e-4a55-b3b6-1d1c2b7f9a10"),
		QueryKey:     "zip:90210",
		Kind:         types.QueryKindZIP,
		StationCount: 5,
		Outcome:      types.SearchOutcomeFound,
		OccurredAt:   time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	msg, err := serializeToMessage(sampleEvent())
	require.NoError(t, err)

	assert.Equal(t, []byte("zip:90210"), msg.Key)
	assert.Contains(t, string(msg.Value), `"query_key":"zip:90210"`)
	assert.Contains(t, string(msg.Value), `"station_count":5`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "outcome", msg.Headers[0].Key)
	assert.Equal(t, []byte("found"), msg.Headers[0].Value)
	assert.Equal(t, "occurred_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2024-06-05T12:00:00Z"), msg.Headers[1].Value)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	require.NoError(t, p.Publish(context.Background(), sampleEvent(), sampleEvent()))
	assert.Len(t, w.written, 2)

	require.NoError(t, p.Publish(context.Background()))
	assert.Len(t, w.written, 2)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &KafkaPublisher{writer: w, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := p.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}
