package leave

import "time"

const dateLayout = "2006-01-02"

type ApplyLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	// LeaveType defaults to sick when empty.
	LeaveType string `json:"leave_type" binding:"omitempty,oneof=sick casual emergency study"`
	Reason    string `json:"reason" binding:"max=255"`
}

type ListFilter struct {
	Status   Status
	Q        string
	UserID   string
	Page     int
	PageSize int
}

type LeaveResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	OwnerName   string `json:"owner_name,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	LeaveType   string `json:"leave_type"`
	Reason      string `json:"reason"`
	DefaultDays int    `json:"default_days"`
	LeaveDays   *int   `json:"leave_days"`
	Status      string `json:"status"`
	IsApproved  bool   `json:"is_approved"`
	IsRejected  bool   `json:"is_rejected"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ListResponse struct {
	Items []LeaveResponse
	Total int64
}

type HistoryResponse struct {
	Transition string `json:"transition"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ActorID    string `json:"actor_id"`
	OccurredAt string `json:"occurred_at"`
}

func mapToResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:          l.ID.String(),
		UserID:      l.UserID.String(),
		OwnerName:   l.OwnerName(),
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		LeaveType:   string(l.LeaveType),
		Reason:      l.Reason,
		DefaultDays: l.DefaultDays,
		LeaveDays:   l.Days(),
		Status:      string(l.Status),
		IsApproved:  l.LeaveApproved(),
		IsRejected:  l.IsRejected(),
		CreatedAt:   formatTime(l.CreatedAt),
		UpdatedAt:   formatTime(l.UpdatedAt),
	}
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	res := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		res[i] = mapToResponse(l)
	}
	return res
}

func mapToHistoryResponse(logs []AuditLog) []HistoryResponse {
	res := make([]HistoryResponse, len(logs))
	for i, log := range logs {
		res[i] = HistoryResponse{
			Transition: log.Transition,
			FromStatus: log.FromStatus,
			ToStatus:   log.ToStatus,
			ActorID:    log.ActorID,
			OccurredAt: formatTime(log.OccurredAt),
		}
	}
	return res
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
