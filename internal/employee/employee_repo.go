package employee

import (
	"context"
	"database/sql"

	"go-hrsuit/internal/shared/scope"

	"gorm.io/gorm"
)

const table = "employees"

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	Update(ctx context.Context, empl *Employee) error
	// ListActive is the default directory view: soft-deleted rows are excluded.
	ListActive(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	// ListAll includes soft-deleted rows.
	ListAll(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	ListBlocked(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	ListOptions(ctx context.Context) ([]Employee, error)
	// FindByID ignores the soft-delete flag so detail views can show deleted rows.
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	ExistsByUserID(ctx context.Context, userID, excludeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit("Department", "Role").Create(empl).Error
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	// Preloaded associations must not be written back.
	return r.conn(ctx).Omit("Department", "Role").Save(empl).Error
}

func (r *repository) ListActive(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	return r.list(ctx, filter, scope.NotDeleted(table))
}

func (r *repository) ListAll(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	return r.list(ctx, filter)
}

func (r *repository) ListBlocked(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	return r.list(ctx, filter, scope.Blocked(table))
}

func (r *repository) list(
	ctx context.Context,
	filter ListFilter,
	scopes ...func(*gorm.DB) *gorm.DB,
) ([]Employee, int64, error) {
	scopes = append(scopes, scope.NameSearch(table, filter.Q))

	var total int64
	if err := r.conn(ctx).Model(&Employee{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var empls []Employee
	err := r.conn(ctx).
		Preload("Department").
		Preload("Role").
		Scopes(scopes...).
		Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Order(table + ".created_at DESC").
		Find(&empls).Error
	return empls, total, err
}

func (r *repository) ListOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Select("id", "first_name", "last_name", "other_name").
		Scopes(scope.NotDeleted(table)).
		Where("is_blocked = ?", false).
		Order("first_name ASC, last_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Preload("Department").
		Preload("Role").
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) ExistsByUserID(ctx context.Context, userID, excludeID string) (bool, error) {
	q := r.conn(ctx).Model(&Employee{}).Where("user_id = ?", userID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
