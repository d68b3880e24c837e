package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hrsuit/internal/events"
	"go-hrsuit/internal/metrics"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type LeaveHistoryRecorder interface {
	RecordStatusChange(ctx context.Context, event events.LeaveStatusChangedEvent) error
}

type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// errSkip marks a message that can never be processed and should be committed.
var errSkip = errors.New("skip message")

type handleFunc func(ctx context.Context, msg kafkago.Message) error

const (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 30 * time.Second
)

// retryDelay doubles from retryBaseDelay per attempt, capped at retryMaxDelay.
var retryDelay = func(attempt int) time.Duration {
	d := retryBaseDelay
	for i := 1; i < attempt && d < retryMaxDelay; i++ {
		d *= 2
	}
	return min(d, retryMaxDelay)
}

func ConsumeLeaveStatus(
	ctx context.Context,
	reader MessageReader,
	history LeaveHistoryRecorder,
	dashboard CacheInvalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")
	consume(ctx, reader, log, events.LeaveStatusChangedTopic, func(ctx context.Context, msg kafkago.Message) error {
		return handleLeaveStatus(ctx, msg, history, dashboard, log)
	})
}

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	dashboard CacheInvalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	consume(ctx, reader, log, events.EmployeeCreatedTopic, func(ctx context.Context, msg kafkago.Message) error {
		return handleEmployeeCreated(ctx, msg, dashboard, log)
	})
}

func consume(ctx context.Context, reader MessageReader, log *zap.Logger, topic string, handle handleFunc) {
	log.Info("consumer started", zap.String("topic", topic))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped", zap.String("topic", topic))
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		result, ok := handleUntilDone(ctx, msg, log, topic, handle)
		if !ok {
			log.Info("consumer stopped before message was handled",
				zap.String("topic", topic),
				zap.Int64("offset", msg.Offset),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			continue
		}
		metrics.EventConsumed(topic, result)
	}
}

// handleUntilDone retries msg until it is processed or skipped. Later offsets
// are never committed past a failed one. ok is false when ctx ends first.
func handleUntilDone(
	ctx context.Context,
	msg kafkago.Message,
	log *zap.Logger,
	topic string,
	handle handleFunc,
) (result string, ok bool) {
	for attempt := 1; ; attempt++ {
		err := handle(ctx, msg)
		if err == nil {
			return "processed", true
		}
		if errors.Is(err, errSkip) {
			return "skipped", true
		}

		metrics.EventConsumed(topic, "failed")
		if ctx.Err() != nil {
			return "", false
		}
		delay := retryDelay(attempt)
		log.Warn("handle message failed, retrying",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", false
		case <-timer.C:
		}
	}
}

func handleLeaveStatus(
	ctx context.Context,
	msg kafkago.Message,
	history LeaveHistoryRecorder,
	dashboard CacheInvalidator,
	log *zap.Logger,
) error {
	var event events.LeaveStatusChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave_status_changed event failed", zap.Error(err))
		return errSkip
	}
	if event.EventID == "" {
		event.EventID = header(msg, "outbox_id")
	}
	if event.EventID == "" || event.LeaveID == "" {
		log.Warn("leave_status_changed event missing ids, skipping", zap.Int64("offset", msg.Offset))
		return errSkip
	}

	if err := history.RecordStatusChange(ctx, event); err != nil {
		log.Error("record leave history failed",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return err
	}

	if err := dashboard.Invalidate(ctx); err != nil {
		log.Warn("invalidate dashboard cache failed", zap.Error(err))
	}

	log.Info("leave status change recorded",
		zap.String("leave_id", event.LeaveID),
		zap.String("transition", event.Transition),
		zap.String("to_status", event.ToStatus),
	)
	return nil
}

func handleEmployeeCreated(
	ctx context.Context,
	msg kafkago.Message,
	dashboard CacheInvalidator,
	log *zap.Logger,
) error {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee_created event failed", zap.Error(err))
		return errSkip
	}

	if err := dashboard.Invalidate(ctx); err != nil {
		log.Error("invalidate dashboard cache failed", zap.String("employee_id", event.EmployeeID), zap.Error(err))
		return err
	}

	log.Info("dashboard refreshed for new employee", zap.String("employee_id", event.EmployeeID))
	return nil
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
