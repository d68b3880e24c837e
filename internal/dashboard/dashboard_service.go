package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"go-hrsuit/internal/leave"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	SummaryKey = "dashboard:summary"
	summaryTTL = 5 * time.Minute

	recentLimit = 5
)

// LeaveReader is the slice of the leave service the dashboard reads from.
type LeaveReader interface {
	ListPending(ctx context.Context, filter leave.ListFilter) (leave.ListResponse, error)
	ListMine(ctx context.Context, actorID string, filter leave.ListFilter) (leave.ListResponse, error)
}

type Service interface {
	Summary(ctx context.Context, actorID string) (SummaryResponse, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	repo   Repository
	leaves LeaveReader
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, leaves LeaveReader, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{repo: repo, leaves: leaves, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Summary(ctx context.Context, actorID string) (SummaryResponse, error) {
	overview, err := s.overview(ctx)
	if err != nil {
		return SummaryResponse{}, err
	}

	mine, err := s.leaves.ListMine(ctx, actorID, leave.ListFilter{Page: 1, PageSize: recentLimit})
	if err != nil {
		s.logger.Warn("dashboard own leaves failed", zap.String("actor_id", actorID), zap.Error(err))
		return SummaryResponse{}, err
	}

	return SummaryResponse{Overview: overview, MyLeaves: mine.Items}, nil
}

func (s *service) overview(ctx context.Context) (Overview, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, SummaryKey).Result(); err == nil {
			var resp Overview
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(SummaryKey, func() (interface{}, error) {
		active, blocked, err := s.repo.CountEmployees(ctx)
		if err != nil {
			return nil, err
		}

		counts, err := s.repo.CountLeavesByStatus(ctx)
		if err != nil {
			return nil, err
		}

		pending, err := s.leaves.ListPending(ctx, leave.ListFilter{Page: 1, PageSize: recentLimit})
		if err != nil {
			return nil, err
		}

		resp := Overview{
			ActiveEmployees:  active,
			BlockedEmployees: blocked,
			LeaveCounts:      counts,
			PendingLeaves:    pending.Items,
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, SummaryKey, jsonData, summaryTTL).Err(); err != nil {
					s.logger.Warn("cache dashboard summary failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("build dashboard summary failed", zap.Error(err))
		return Overview{}, err
	}

	return v.(Overview), nil
}

// Invalidate drops the cached overview. The event consumer calls it after
// leave and employee events.
func (s *service) Invalidate(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, SummaryKey).Err()
}
