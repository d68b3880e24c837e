package dashboard

import (
	"context"

	"go-hrsuit/internal/employee"
	"go-hrsuit/internal/leave"
	"go-hrsuit/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountEmployees(ctx context.Context) (active, blocked int64, err error)
	CountLeavesByStatus(ctx context.Context) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEmployees(ctx context.Context) (active, blocked int64, err error) {
	db := r.db.WithContext(ctx)

	if err = db.Model(&employee.Employee{}).
		Scopes(scope.NotDeleted("employees")).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}

	if err = db.Model(&employee.Employee{}).
		Scopes(scope.NotDeleted("employees"), scope.Blocked("employees")).
		Count(&blocked).Error; err != nil {
		return 0, 0, err
	}

	return active, blocked, nil
}

type statusCount struct {
	Status string
	Total  int64
}

func (r *repository) CountLeavesByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&leave.Leave{}).
		Select("status, count(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		string(leave.StatusPending):   0,
		string(leave.StatusApproved):  0,
		string(leave.StatusRejected):  0,
		string(leave.StatusCancelled): 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
