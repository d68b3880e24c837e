package dashboard

import "go-hrsuit/internal/leave"

// Overview is the actor-independent part of the summary; it is what gets cached.
type Overview struct {
	ActiveEmployees  int64                 `json:"active_employees"`
	BlockedEmployees int64                 `json:"blocked_employees"`
	LeaveCounts      map[string]int64      `json:"leave_counts"`
	PendingLeaves    []leave.LeaveResponse `json:"pending_leaves"`
}

type SummaryResponse struct {
	Overview
	MyLeaves []leave.LeaveResponse `json:"my_leaves"`
}
