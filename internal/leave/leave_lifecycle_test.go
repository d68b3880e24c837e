package leave

import (
	"testing"
	"time"

	leaveerrors "go-hrsuit/internal/leave/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userTransitions = []Transition{
	TransitionApprove,
	TransitionUnapprove,
	TransitionCancel,
	TransitionUncancel,
	TransitionReject,
	TransitionUnreject,
}

func newApplied(t *testing.T) *Leave {
	t.Helper()
	l := &Leave{}
	changed, err := l.apply(TransitionApply)
	require.NoError(t, err)
	require.True(t, changed)
	return l
}

func TestApply_NewLeaveIsPending(t *testing.T) {
	l := newApplied(t)

	assert.Equal(t, StatusPending, l.Status)
	assert.False(t, l.IsApproved)

	changed, err := l.apply(TransitionApply)
	assert.NoError(t, err)
	assert.False(t, changed)
}

func TestApply_TransitionTable(t *testing.T) {
	tests := []struct {
		name       string
		from       Status
		transition Transition
		changed    bool
		want       Status
	}{
		{"approve pending", StatusPending, TransitionApprove, true, StatusApproved},
		{"approve rejected", StatusRejected, TransitionApprove, true, StatusApproved},
		{"approve cancelled", StatusCancelled, TransitionApprove, true, StatusApproved},
		{"approve approved is a no-op", StatusApproved, TransitionApprove, false, StatusApproved},
		{"unapprove approved", StatusApproved, TransitionUnapprove, true, StatusPending},
		{"unapprove pending is a no-op", StatusPending, TransitionUnapprove, false, StatusPending},
		{"unapprove rejected is a no-op", StatusRejected, TransitionUnapprove, false, StatusRejected},
		{"cancel approved", StatusApproved, TransitionCancel, true, StatusCancelled},
		{"cancel cancelled", StatusCancelled, TransitionCancel, true, StatusCancelled},
		{"uncancel cancelled", StatusCancelled, TransitionUncancel, true, StatusPending},
		{"uncancel approved", StatusApproved, TransitionUncancel, true, StatusPending},
		{"reject approved", StatusApproved, TransitionReject, true, StatusRejected},
		{"reject pending", StatusPending, TransitionReject, true, StatusRejected},
		{"unreject rejected", StatusRejected, TransitionUnreject, true, StatusPending},
		{"unreject cancelled", StatusCancelled, TransitionUnreject, true, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Leave{Status: tt.from, IsApproved: tt.from == StatusApproved}

			changed, err := l.apply(tt.transition)

			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, l.Status)
			assert.Equal(t, tt.want == StatusApproved, l.IsApproved)
		})
	}
}

func TestApply_UnknownTransition(t *testing.T) {
	l := newApplied(t)

	changed, err := l.apply(Transition("archive"))

	assert.ErrorIs(t, err, leaveerrors.ErrUnknownTransition)
	assert.False(t, changed)
	assert.Equal(t, StatusPending, l.Status)
}

// Every sequence of up to four transitions keeps the approval flag in step
// with the status.
func TestApply_ApprovalFlagTracksStatus(t *testing.T) {
	var walk func(l Leave, depth int)
	walk = func(l Leave, depth int) {
		assert.Equal(t, l.Status == StatusApproved, l.IsApproved, "status %s", l.Status)
		if depth == 0 {
			return
		}
		for _, tr := range userTransitions {
			next := l
			_, err := next.apply(tr)
			require.NoError(t, err)
			walk(next, depth-1)
		}
	}

	walk(*newApplied(t), 4)
}

func TestApply_RoundTrips(t *testing.T) {
	pairs := [][2]Transition{
		{TransitionApprove, TransitionUnapprove},
		{TransitionCancel, TransitionUncancel},
		{TransitionReject, TransitionUnreject},
	}

	for _, p := range pairs {
		t.Run(string(p[0]), func(t *testing.T) {
			l := newApplied(t)
			_, err := l.apply(p[0])
			require.NoError(t, err)
			_, err = l.apply(p[1])
			require.NoError(t, err)

			assert.Equal(t, StatusPending, l.Status)
			assert.False(t, l.IsApproved)
		})
	}
}

func TestApply_RepeatedCallsConverge(t *testing.T) {
	for _, tr := range userTransitions {
		t.Run(string(tr), func(t *testing.T) {
			l := newApplied(t)
			_, err := l.apply(tr)
			require.NoError(t, err)
			once := *l

			_, err = l.apply(tr)
			require.NoError(t, err)

			assert.Equal(t, once.Status, l.Status)
			assert.Equal(t, once.IsApproved, l.IsApproved)
		})
	}
}

func TestApply_SickLeaveScenario(t *testing.T) {
	l := newApplied(t)
	l.LeaveType = LeaveTypeSick

	steps := []struct {
		transition Transition
		status     Status
		approved   bool
	}{
		{TransitionApprove, StatusApproved, true},
		{TransitionReject, StatusRejected, false},
		{TransitionUnreject, StatusPending, false},
	}

	for _, step := range steps {
		changed, err := l.apply(step.transition)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, step.status, l.Status, "after %s", step.transition)
		assert.Equal(t, step.approved, l.LeaveApproved(), "after %s", step.transition)
	}
	assert.False(t, l.IsRejected())
}

func TestLeave_Days(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	l := Leave{StartDate: day(10), EndDate: day(15)}
	require.NotNil(t, l.Days())
	assert.Equal(t, 5, *l.Days())

	l = Leave{StartDate: day(10), EndDate: day(10)}
	require.NotNil(t, l.Days())
	assert.Equal(t, 0, *l.Days())

	l = Leave{StartDate: day(15), EndDate: day(10)}
	assert.Nil(t, l.Days())
}

func TestLeave_Classification(t *testing.T) {
	l := Leave{Status: StatusRejected}
	assert.True(t, l.IsRejected())
	assert.False(t, l.LeaveApproved())

	l = Leave{Status: StatusApproved, IsApproved: true}
	assert.False(t, l.IsRejected())
	assert.True(t, l.LeaveApproved())
}

func TestLeave_OwnerName(t *testing.T) {
	str := func(s string) *string { return &s }

	assert.Equal(t, "", Leave{}.OwnerName())
	assert.Equal(t, "Jane Doe", Leave{OwnerFirstName: str("Jane"), OwnerLastName: str("Doe")}.OwnerName())
	assert.Equal(t, "Jane Doe Marie", Leave{
		OwnerFirstName: str("Jane"),
		OwnerLastName:  str("Doe"),
		OwnerOtherName: str("Marie"),
	}.OwnerName())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, LeaveTypeStudy.Valid())
	assert.False(t, LeaveType("annual").Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("PENDING").Valid())
}
