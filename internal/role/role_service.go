package role

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	roleerrors "go-hrsuit/internal/role/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	RoleAllKey = "roles:all"
	cacheTTL   = 30 * time.Minute
)

//go:generate mockgen -source=role_service.go -destination=mock/role_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	GetAll(ctx context.Context) ([]RoleResponse, error)
	GetByID(ctx context.Context, id string) (RoleResponse, error)
	Update(ctx context.Context, id string, req UpdateRoleRequest) (RoleResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("role.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RoleResponse{}, err
	}
	defer tx.Rollback()

	role := &Role{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.WithTx(tx).Create(ctx, role); err != nil {
		s.logger.Error("create role failed", zap.Error(err))
		return RoleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RoleResponse{}, err
	}

	s.invalidate(ctx)
	s.logger.Info("role created", zap.String("role_id", role.ID.String()))
	return mapToResponse(*role), nil
}

func (s *service) GetAll(ctx context.Context) ([]RoleResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, RoleAllKey).Result(); err == nil {
			var resp []RoleResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(RoleAllKey, func() (interface{}, error) {
		roles, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(roles)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, RoleAllKey, jsonData, cacheTTL).Err(); err != nil {
					s.logger.Warn("cache roles failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("list roles failed", zap.Error(err))
		return nil, err
	}

	return v.([]RoleResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (RoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RoleResponse{}, roleerrors.ErrInvalidRoleID
	}

	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RoleResponse{}, err
	}

	return mapToResponse(*role), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRoleRequest) (RoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RoleResponse{}, roleerrors.ErrInvalidRoleID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RoleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role, err := qtx.FindByID(ctx, id)
	if err != nil {
		return RoleResponse{}, err
	}

	role.Name = req.Name
	role.Description = req.Description

	if err := qtx.Update(ctx, role); err != nil {
		s.logger.Error("update role failed", zap.String("role_id", id), zap.Error(err))
		return RoleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RoleResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*role), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return roleerrors.ErrInvalidRoleID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("role deleted", zap.String("role_id", id))
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, RoleAllKey).Err(); err != nil {
		s.logger.Warn("invalidate role cache failed", zap.Error(err))
	}
}
