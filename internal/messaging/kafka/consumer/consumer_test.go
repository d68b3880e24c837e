package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrsuit/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeHistory struct {
	recordFn func(ctx context.Context, event events.LeaveStatusChangedEvent) error
	recorded []events.LeaveStatusChangedEvent
}

func (f *fakeHistory) RecordStatusChange(ctx context.Context, event events.LeaveStatusChangedEvent) error {
	if f.recordFn != nil {
		if err := f.recordFn(ctx, event); err != nil {
			return err
		}
	}
	f.recorded = append(f.recorded, event)
	return nil
}

type fakeCache struct {
	invalidateFn func(ctx context.Context) error
	calls        int
}

func (f *fakeCache) Invalidate(ctx context.Context) error {
	f.calls++
	if f.invalidateFn != nil {
		return f.invalidateFn(ctx)
	}
	return nil
}

// fakeReader serves queued messages then blocks until the context is cancelled.
type fakeReader struct {
	msgs      []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.msgs) == 0 {
		f.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := f.msgs[0]
	f.msgs = f.msgs[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

func leaveMessage(t *testing.T, event events.LeaveStatusChangedEvent, offset int64) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(event)
	assert.NoError(t, err)
	return kafkago.Message{Topic: events.LeaveStatusChangedTopic, Value: body, Offset: offset}
}

func TestHandleLeaveStatus(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("records and invalidates", func(t *testing.T) {
		history := &fakeHistory{}
		cache := &fakeCache{}
		msg := leaveMessage(t, events.LeaveStatusChangedEvent{
			EventID: "evt-1", LeaveID: "leave-1", Transition: "approve", FromStatus: "pending", ToStatus: "approved",
		}, 1)

		err := handleLeaveStatus(ctx, msg, history, cache, log)

		assert.NoError(t, err)
		assert.Len(t, history.recorded, 1)
		assert.Equal(t, 1, cache.calls)
	})

	t.Run("event id falls back to header", func(t *testing.T) {
		history := &fakeHistory{}
		msg := leaveMessage(t, events.LeaveStatusChangedEvent{LeaveID: "leave-1"}, 2)
		msg.Headers = []kafkago.Header{{Key: "outbox_id", Value: []byte("evt-h")}}

		err := handleLeaveStatus(ctx, msg, history, &fakeCache{}, log)

		assert.NoError(t, err)
		assert.Equal(t, "evt-h", history.recorded[0].EventID)
	})

	t.Run("malformed payload is skipped", func(t *testing.T) {
		err := handleLeaveStatus(ctx, kafkago.Message{Value: []byte("{")}, &fakeHistory{}, &fakeCache{}, log)
		assert.ErrorIs(t, err, errSkip)
	})

	t.Run("history failure is retried", func(t *testing.T) {
		history := &fakeHistory{recordFn: func(context.Context, events.LeaveStatusChangedEvent) error {
			return errors.New("db down")
		}}
		cache := &fakeCache{}
		msg := leaveMessage(t, events.LeaveStatusChangedEvent{EventID: "evt-1", LeaveID: "leave-1"}, 3)

		err := handleLeaveStatus(ctx, msg, history, cache, log)

		assert.EqualError(t, err, "db down")
		assert.Zero(t, cache.calls)
	})

	t.Run("cache failure does not fail the message", func(t *testing.T) {
		cache := &fakeCache{invalidateFn: func(context.Context) error { return errors.New("redis down") }}
		msg := leaveMessage(t, events.LeaveStatusChangedEvent{EventID: "evt-1", LeaveID: "leave-1"}, 4)

		assert.NoError(t, handleLeaveStatus(ctx, msg, &fakeHistory{}, cache, log))
	})
}

func noRetryDelay(t *testing.T) {
	t.Helper()
	orig := retryDelay
	retryDelay = func(int) time.Duration { return 0 }
	t.Cleanup(func() { retryDelay = orig })
}

func TestConsumeLeaveStatus_CommitsProcessedAndSkipped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	good := leaveMessage(t, events.LeaveStatusChangedEvent{EventID: "evt-1", LeaveID: "leave-1"}, 1)
	bad := kafkago.Message{Value: []byte("not json"), Offset: 2}

	reader := &fakeReader{msgs: []kafkago.Message{good, bad}, cancel: cancel}
	history := &fakeHistory{}

	ConsumeLeaveStatus(ctx, reader, history, &fakeCache{}, zap.NewNop())

	if assert.Len(t, reader.committed, 2) {
		assert.Equal(t, int64(1), reader.committed[0].Offset)
		assert.Equal(t, int64(2), reader.committed[1].Offset)
	}
	assert.Len(t, history.recorded, 1)
}

func TestConsumeLeaveStatus_RetriesFailedEventBeforeCommit(t *testing.T) {
	noRetryDelay(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := leaveMessage(t, events.LeaveStatusChangedEvent{EventID: "evt-1", LeaveID: "leave-1"}, 1)
	second := leaveMessage(t, events.LeaveStatusChangedEvent{EventID: "evt-2", LeaveID: "leave-2"}, 2)
	reader := &fakeReader{msgs: []kafkago.Message{first, second}, cancel: cancel}

	var attempts []string
	history := &fakeHistory{recordFn: func(_ context.Context, e events.LeaveStatusChangedEvent) error {
		attempts = append(attempts, e.EventID)
		if e.EventID == "evt-1" && len(attempts) == 1 {
			assert.Empty(t, reader.committed)
			return errors.New("connection reset")
		}
		return nil
	}}

	ConsumeLeaveStatus(ctx, reader, history, &fakeCache{}, zap.NewNop())

	assert.Equal(t, []string{"evt-1", "evt-1", "evt-2"}, attempts)
	if assert.Len(t, history.recorded, 2) {
		assert.Equal(t, "evt-1", history.recorded[0].EventID)
		assert.Equal(t, "evt-2", history.recorded[1].EventID)
	}
	if assert.Len(t, reader.committed, 2) {
		assert.Equal(t, int64(1), reader.committed[0].Offset)
		assert.Equal(t, int64(2), reader.committed[1].Offset)
	}
}

func TestConsumeLeaveStatus_StopsWithoutCommittingUnhandledEvent(t *testing.T) {
	noRetryDelay(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	failing := leaveMessage(t, events.LeaveStatusChangedEvent{EventID: "evt-1", LeaveID: "leave-1"}, 1)
	later := leaveMessage(t, events.LeaveStatusChangedEvent{EventID: "evt-2", LeaveID: "leave-2"}, 2)
	reader := &fakeReader{msgs: []kafkago.Message{failing, later}, cancel: cancel}

	calls := 0
	history := &fakeHistory{recordFn: func(context.Context, events.LeaveStatusChangedEvent) error {
		calls++
		if calls == 3 {
			cancel()
		}
		return errors.New("db down")
	}}

	ConsumeLeaveStatus(ctx, reader, history, &fakeCache{}, zap.NewNop())

	assert.Equal(t, 3, calls)
	assert.Empty(t, reader.committed)
	assert.Empty(t, history.recorded)
	assert.Len(t, reader.msgs, 1, "later offsets must not be fetched past a failed one")
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, retryBaseDelay, retryDelay(1))
	assert.Equal(t, 2*retryBaseDelay, retryDelay(2))
	assert.Equal(t, retryMaxDelay, retryDelay(50))
}

func TestHandleEmployeeCreated(t *testing.T) {
	body, _ := json.Marshal(events.EmployeeCreatedEvent{EmployeeID: "emp-1"})
	cache := &fakeCache{}

	err := handleEmployeeCreated(context.Background(), kafkago.Message{Value: body}, cache, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, 1, cache.calls)
}
