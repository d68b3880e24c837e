package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	leaveerrors "go-hrsuit/internal/leave/errors"
	"go-hrsuit/internal/messaging/kafka"
	"go-hrsuit/internal/metrics"
	"go-hrsuit/internal/shared/apperror"
	"go-hrsuit/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxReasonLength = 255

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actorID string, req ApplyLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	List(ctx context.Context, filter ListFilter) (ListResponse, error)
	ListPending(ctx context.Context, filter ListFilter) (ListResponse, error)
	ListApproved(ctx context.Context, filter ListFilter) (ListResponse, error)
	ListRejected(ctx context.Context, filter ListFilter) (ListResponse, error)
	ListCancelled(ctx context.Context, filter ListFilter) (ListResponse, error)
	ListMine(ctx context.Context, actorID string, filter ListFilter) (ListResponse, error)
	Approve(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Unapprove(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Uncancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Unreject(ctx context.Context, actorID, id string) (LeaveResponse, error)
	History(ctx context.Context, id string) ([]HistoryResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	history HistoryRepository
	outbox  kafka.OutboxRepository
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	history HistoryRepository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		history: history,
		outbox:  outboxRepo,
		now:     time.Now,
		logger:  l,
	}
}

func (s *service) Apply(ctx context.Context, actorID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("leave_type", req.LeaveType),
	)

	userID, err := uuid.Parse(actorID)
	if err != nil {
		s.logger.Warn("apply leave invalid actor id", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	leaveType := LeaveType(strings.ToLower(strings.TrimSpace(req.LeaveType)))
	if leaveType == "" {
		leaveType = LeaveTypeSick
	}
	if !leaveType.Valid() {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	reason := strings.TrimSpace(req.Reason)
	if len([]rune(reason)) > maxReasonLength {
		return LeaveResponse{}, apperror.FieldErrors(map[string]string{
			"reason": "Reason must be at most 255 characters",
		})
	}

	now := s.now()
	l := &Leave{
		ID:          uuid.New(),
		UserID:      userID,
		StartDate:   startDate,
		EndDate:     endDate,
		LeaveType:   leaveType,
		Reason:      reason,
		DefaultDays: DefaultLeaveDays,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := l.apply(TransitionApply); err != nil {
		return LeaveResponse{}, err
	}
	if l.Days() == nil {
		// Accepted as submitted; leave_days is reported as null.
		s.logger.Warn("apply leave with start after end",
			zap.String("request_id", rid),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.queueStatusChanged(ctx, tx, l, actorID, TransitionApply, "", rid); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	metrics.LeaveTransition(string(TransitionApply), string(l.Status))
	s.logger.Info("apply leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", l.UserID.String()),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	s.logger.Debug("get leave by id requested", zap.String("leave_id", id))

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get leave by id failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*l), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (ListResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return ListResponse{}, leaveerrors.ErrInvalidStatus
	}
	return s.list(ctx, filter)
}

func (s *service) ListPending(ctx context.Context, filter ListFilter) (ListResponse, error) {
	filter.Status = StatusPending
	return s.list(ctx, filter)
}

func (s *service) ListApproved(ctx context.Context, filter ListFilter) (ListResponse, error) {
	filter.Status = StatusApproved
	return s.list(ctx, filter)
}

func (s *service) ListRejected(ctx context.Context, filter ListFilter) (ListResponse, error) {
	filter.Status = StatusRejected
	return s.list(ctx, filter)
}

func (s *service) ListCancelled(ctx context.Context, filter ListFilter) (ListResponse, error) {
	filter.Status = StatusCancelled
	return s.list(ctx, filter)
}

func (s *service) ListMine(ctx context.Context, actorID string, filter ListFilter) (ListResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return ListResponse{}, leaveerrors.ErrInvalidActorID
	}
	filter.UserID = actorID
	return s.list(ctx, filter)
}

func (s *service) list(ctx context.Context, filter ListFilter) (ListResponse, error) {
	s.logger.Debug("list leaves requested",
		zap.String("status", string(filter.Status)),
		zap.String("q", filter.Q),
		zap.String("user_id", filter.UserID),
		zap.Int("page", filter.Page),
	)

	leaves, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list leaves failed", zap.Error(err))
		return ListResponse{}, err
	}

	return ListResponse{Items: mapToListResponse(leaves), Total: total}, nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transition(ctx, actorID, id, TransitionApprove)
}

func (s *service) Unapprove(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transition(ctx, actorID, id, TransitionUnapprove)
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transition(ctx, actorID, id, TransitionCancel)
}

func (s *service) Uncancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transition(ctx, actorID, id, TransitionUncancel)
}

func (s *service) Reject(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transition(ctx, actorID, id, TransitionReject)
}

func (s *service) Unreject(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transition(ctx, actorID, id, TransitionUnreject)
}

// transition loads the leave, applies t and persists the result together with
// its outbox event. A transition whose precondition fails returns the leave
// unchanged without writing anything.
func (s *service) transition(ctx context.Context, actorID, id string, t Transition) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("leave transition requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("transition", string(t)),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		s.logger.Warn("leave transition invalid actor id", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave transition begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("leave transition fetch failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	from := l.Status
	changed, err := l.apply(t)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !changed {
		metrics.LeaveNoop(string(t))
		s.logger.Info("leave transition skipped",
			zap.String("request_id", rid),
			zap.String("leave_id", id),
			zap.String("transition", string(t)),
			zap.String("status", string(l.Status)),
		)
		return mapToResponse(*l), nil
	}

	l.UpdatedAt = s.now()
	if err := qtx.UpdateStatus(ctx, l); err != nil {
		s.logger.Error("leave transition persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.queueStatusChanged(ctx, tx, l, actorID, t, from, rid); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("leave transition commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	metrics.LeaveTransition(string(t), string(l.Status))
	s.logger.Info("leave transition success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("transition", string(t)),
		zap.String("from_status", string(from)),
		zap.String("to_status", string(l.Status)),
	)

	return mapToResponse(*l), nil
}

func (s *service) History(ctx context.Context, id string) ([]HistoryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, mapRepositoryError(err)
	}

	logs, err := s.history.ListByLeave(ctx, id)
	if err != nil {
		s.logger.Error("list leave history failed", zap.String("leave_id", id), zap.Error(err))
		return nil, err
	}

	return mapToHistoryResponse(logs), nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}
