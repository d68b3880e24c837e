package leave

import (
	"context"
	"database/sql"

	"go-hrsuit/internal/shared/scope"

	"gorm.io/gorm"
)

const (
	table = "leaves"

	ownerJoin    = "LEFT JOIN employees ON employees.user_id = leaves.user_id"
	ownerColumns = "leaves.*, employees.first_name AS owner_first_name, " +
		"employees.last_name AS owner_last_name, employees.other_name AS owner_other_name"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	// UpdateStatus writes only the lifecycle columns of l.
	UpdateStatus(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	List(ctx context.Context, filter ListFilter) ([]Leave, int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) UpdateStatus(ctx context.Context, l *Leave) error {
	return r.conn(ctx).
		Model(l).
		Select("status", "is_approved", "updated_at").
		Updates(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Select(ownerColumns).
		Joins(ownerJoin).
		Where(table+".id = ?", id).
		Take(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Leave, int64, error) {
	scopes := []func(*gorm.DB) *gorm.DB{
		scope.Status(table, string(filter.Status)),
		scope.NameSearch("employees", filter.Q),
	}
	if filter.UserID != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(table+".user_id = ?", filter.UserID)
		})
	}

	var total int64
	if err := r.conn(ctx).Model(&Leave{}).Joins(ownerJoin).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []Leave
	err := r.conn(ctx).
		Model(&Leave{}).
		Select(ownerColumns).
		Joins(ownerJoin).
		Scopes(scopes...).
		Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Order(table + ".created_at DESC").
		Find(&leaves).Error
	return leaves, total, err
}
