package app

import (
	"go-hrsuit/internal/auth"
	"go-hrsuit/internal/department"
	"go-hrsuit/internal/employee"
	"go-hrsuit/internal/leave"
	"go-hrsuit/internal/messaging/kafka"
	"go-hrsuit/internal/rbac"
	"go-hrsuit/internal/role"

	"gorm.io/gorm"
)

// migrationModels is ordered so referenced tables exist first.
func migrationModels() []any {
	return []any{
		&auth.User{},
		&rbac.PolicyRow{},
		&department.Department{},
		&role.Role{},
		&employee.Employee{},
		&leave.Leave{},
		&leave.AuditLog{},
	}
}

func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(migrationModels()...); err != nil {
		return err
	}
	return kafka.AutoMigrate(db)
}
