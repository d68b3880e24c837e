package leave

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

type LeaveType string

const (
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeCasual    LeaveType = "casual"
	LeaveTypeEmergency LeaveType = "emergency"
	LeaveTypeStudy     LeaveType = "study"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypeSick, LeaveTypeCasual, LeaveTypeEmergency, LeaveTypeStudy:
		return true
	}
	return false
}

const DefaultLeaveDays = 30

type Leave struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	LeaveType   LeaveType `gorm:"size:25;not null;default:sick"`
	Reason      string    `gorm:"size:255"`
	DefaultDays int       `gorm:"not null;default:30"`
	// Status and IsApproved are only assigned through apply.
	Status     Status    `gorm:"size:12;not null;default:pending;index"`
	IsApproved bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time

	// Owner name columns are filled by the employees join on reads.
	OwnerFirstName *string `gorm:"->;-:migration;column:owner_first_name"`
	OwnerLastName  *string `gorm:"->;-:migration;column:owner_last_name"`
	OwnerOtherName *string `gorm:"->;-:migration;column:owner_other_name"`
}

// Days is the whole-day span between start and end. It is nil when the
// range is inverted.
func (l Leave) Days() *int {
	if l.StartDate.After(l.EndDate) {
		return nil
	}
	days := int(l.EndDate.Sub(l.StartDate).Hours() / 24)
	return &days
}

func (l Leave) LeaveApproved() bool {
	return l.IsApproved
}

func (l Leave) IsRejected() bool {
	return l.Status == StatusRejected
}

// OwnerName joins the owning employee's names, or is empty when the account
// has no employee record.
func (l Leave) OwnerName() string {
	if l.OwnerFirstName == nil && l.OwnerLastName == nil {
		return ""
	}
	parts := []string{deref(l.OwnerFirstName), deref(l.OwnerLastName)}
	if other := strings.TrimSpace(deref(l.OwnerOtherName)); other != "" {
		parts = append(parts, other)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
