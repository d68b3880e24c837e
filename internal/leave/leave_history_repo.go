package leave

import (
	"context"
	"fmt"
	"time"

	"go-hrsuit/internal/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuditLog is one recorded leave status change, written by the event consumer.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID    string    `gorm:"size:64;not null;uniqueIndex"`
	LeaveID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"type:uuid;not null"`
	ActorID    string    `gorm:"size:64"`
	Transition string    `gorm:"size:20;not null"`
	FromStatus string    `gorm:"size:12"`
	ToStatus   string    `gorm:"size:12;not null"`
	RequestID  string    `gorm:"size:64"`
	OccurredAt time.Time `gorm:"not null"`
	CreatedAt  time.Time
}

func (AuditLog) TableName() string { return "leave_audit_logs" }

//go:generate mockgen -source=leave_history_repo.go -destination=mock/leave_history_repo_mock.go -package=mock
type HistoryRepository interface {
	// RecordStatusChange is idempotent on the event id.
	RecordStatusChange(ctx context.Context, event events.LeaveStatusChangedEvent) error
	ListByLeave(ctx context.Context, leaveID string) ([]AuditLog, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) RecordStatusChange(ctx context.Context, event events.LeaveStatusChangedEvent) error {
	leaveID, err := uuid.Parse(event.LeaveID)
	if err != nil {
		return fmt.Errorf("leave status event %s: invalid leave id: %w", event.EventID, err)
	}
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return fmt.Errorf("leave status event %s: invalid user id: %w", event.EventID, err)
	}
	if event.EventID == "" {
		return fmt.Errorf("leave status event for %s has no event id", event.LeaveID)
	}

	log := AuditLog{
		ID:         uuid.New(),
		EventID:    event.EventID,
		LeaveID:    leaveID,
		UserID:     userID,
		ActorID:    event.ActorID,
		Transition: event.Transition,
		FromStatus: event.FromStatus,
		ToStatus:   event.ToStatus,
		RequestID:  event.RequestID,
		OccurredAt: event.OccurredAt,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&log).Error
}

func (r *historyRepository) ListByLeave(ctx context.Context, leaveID string) ([]AuditLog, error) {
	var logs []AuditLog
	err := r.db.WithContext(ctx).
		Where("leave_id = ?", leaveID).
		Order("occurred_at ASC, created_at ASC").
		Find(&logs).Error
	return logs, err
}
