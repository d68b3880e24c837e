package leave

import (
	"context"
	"database/sql"

	"go-hrsuit/internal/events"
	"go-hrsuit/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// queueStatusChanged writes a leave.status_changed event to the outbox inside
// tx. The outbox id doubles as the event id so consumers can de-duplicate.
func (s *service) queueStatusChanged(
	ctx context.Context,
	tx *sql.Tx,
	l *Leave,
	actorID string,
	t Transition,
	from Status,
	requestID string,
) error {
	if s.outbox == nil {
		return nil
	}

	eventID := uuid.NewString()
	payload := events.LeaveStatusChangedEvent{
		EventID:    eventID,
		EventType:  events.LeaveStatusChangedType,
		LeaveID:    l.ID.String(),
		UserID:     l.UserID.String(),
		ActorID:    actorID,
		Transition: string(t),
		FromStatus: string(from),
		ToStatus:   string(l.Status),
		RequestID:  requestID,
		OccurredAt: s.now().UTC(),
	}

	event, err := kafka.NewOutboxEvent(
		eventID,
		events.LeaveStatusChangedTopic,
		events.LeaveStatusChangedType,
		"leave",
		l.ID.String(),
		requestID,
		payload,
	)
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("transition", string(t)),
			zap.Error(err),
		)
		return err
	}
	return nil
}
