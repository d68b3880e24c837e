package employee

import (
	"context"
	"database/sql"
	"time"

	"go-hrsuit/internal/events"
	"go-hrsuit/internal/messaging/kafka"

	"go.uber.org/zap"
)

// queueEmployeeCreated writes the employee.created event to the outbox inside tx.
// The relay worker publishes it after commit.
func (s *service) queueEmployeeCreated(ctx context.Context, tx *sql.Tx, empl *Employee, requestID string) error {
	if s.outbox == nil {
		return nil
	}

	payload := events.EmployeeCreatedEvent{
		EventType:  events.EmployeeCreatedType,
		EmployeeID: empl.ID.String(),
		UserID:     empl.UserID.String(),
		FullName:   empl.FullName(),
		OccurredAt: time.Now().UTC(),
	}

	event, err := kafka.NewOutboxEvent(
		"",
		events.EmployeeCreatedTopic,
		events.EmployeeCreatedType,
		"employee",
		empl.ID.String(),
		requestID,
		payload,
	)
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("create employee outbox persist failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
