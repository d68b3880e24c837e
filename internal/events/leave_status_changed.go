package events

import "time"

const (
	LeaveStatusChangedTopic = "hr.leave.status.v1"
	LeaveStatusChangedType  = "leave.status_changed"
)

// LeaveStatusChangedEvent is emitted for every persisted leave transition,
// including creation (Transition "apply", empty FromStatus).
type LeaveStatusChangedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	UserID     string    `json:"user_id"`
	ActorID    string    `json:"actor_id"`
	Transition string    `json:"transition"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
