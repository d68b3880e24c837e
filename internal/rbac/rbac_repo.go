package rbac

import (
	"context"
	"time"

	"go-hrsuit/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	ListPolicies(ctx context.Context) ([]PolicyRow, error)
	SeedPolicies(ctx context.Context, rows []PolicyRow) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type PolicyRow struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Role      string `gorm:"size:50;not null;uniqueIndex:uq_rbac_policy,priority:1"`
	Resource  string `gorm:"size:50;not null;uniqueIndex:uq_rbac_policy,priority:2"`
	Action    string `gorm:"size:50;not null;uniqueIndex:uq_rbac_policy,priority:3"`
	CreatedAt time.Time
}

func (PolicyRow) TableName() string { return "rbac_policies" }

// DefaultPolicies is the permission table seeded on first start.
func DefaultPolicies() []PolicyRow {
	return []PolicyRow{
		{Role: domain.RoleAdmin, Resource: "*", Action: "*"},
		{Role: domain.RoleStaff, Resource: "leave", Action: "create"},
		{Role: domain.RoleStaff, Resource: "leave", Action: "read_own"},
		{Role: domain.RoleStaff, Resource: "dashboard", Action: "read"},
		{Role: domain.RoleStaff, Resource: "employee", Action: "read"},
		{Role: domain.RoleStaff, Resource: "department", Action: "read"},
		{Role: domain.RoleStaff, Resource: "role", Action: "read"},
	}
}

func (r *repository) ListPolicies(ctx context.Context) ([]PolicyRow, error) {
	var rows []PolicyRow
	err := r.db.WithContext(ctx).Order("role, resource, action").Find(&rows).Error
	return rows, err
}

func (r *repository) SeedPolicies(ctx context.Context, rows []PolicyRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}
