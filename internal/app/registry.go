package app

import (
	"database/sql"

	"go-hrsuit/internal/auth"
	"go-hrsuit/internal/config"
	"go-hrsuit/internal/dashboard"
	"go-hrsuit/internal/department"
	"go-hrsuit/internal/employee"
	"go-hrsuit/internal/leave"
	"go-hrsuit/internal/media"
	"go-hrsuit/internal/messaging/kafka"
	"go-hrsuit/internal/rbac"
	"go-hrsuit/internal/rbac/infra"
	"go-hrsuit/internal/role"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modules struct {
	sqlDB  *sql.DB
	gormDB *gorm.DB
	rdb    *redis.Client
	media  media.Store
	cfg    config.Config
	logger *zap.Logger
}

func registerModules(router *gin.Engine, m modules) (rbac.Service, error) {
	cfg := m.cfg
	jwtSecret := cfg.JWT.Secret

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(m.gormDB)
	authRepo := auth.NewRepository(m.gormDB)
	departmentRepo := department.NewRepository(m.gormDB)
	roleRepo := role.NewRepository(m.gormDB)
	employeeRepo := employee.NewRepository(m.gormDB)
	leaveRepo := leave.NewRepository(m.gormDB)
	leaveHistoryRepo := leave.NewHistoryRepository(m.gormDB)
	dashboardRepo := dashboard.NewRepository(m.gormDB)
	outboxRepo := kafka.NewOutboxRepository(m.sqlDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, m.logger)

	// --- Services ---
	authService := auth.NewService(authRepo, auth.TokenConfig{
		Secret:     jwtSecret,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	}, m.logger)
	departmentService := department.NewService(m.sqlDB, departmentRepo, m.rdb, m.logger)
	roleService := role.NewService(m.sqlDB, roleRepo, m.rdb, m.logger)
	leaveService := leave.NewService(m.sqlDB, leaveRepo, leaveHistoryRepo, outboxRepo, m.logger)
	dashboardService := dashboard.NewService(dashboardRepo, leaveService, m.rdb, m.logger)
	employeeService := employee.NewService(m.sqlDB, employeeRepo, outboxRepo, m.rdb, m.media, dashboardService, employee.Config{
		CodePrefix:    cfg.EmployeeCodePrefix,
		MaxImageBytes: cfg.Media.MaxImageBytes,
	}, m.logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:     cfg.IsProduction(),
		AccessTTL:  int(cfg.JWT.AccessTTL.Seconds()),
		RefreshTTL: int(cfg.JWT.RefreshTTL.Seconds()),
	}, m.logger)
	departmentHandler := department.NewHandler(departmentService, m.logger)
	roleHandler := role.NewHandler(roleService, m.logger)
	employeeHandler := employee.NewHandler(employeeService, m.logger)
	leaveHandler := leave.NewHandler(leaveService, m.logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, m.logger)
	rbacHandler := rbac.NewHandler(rbacService, m.logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, jwtSecret)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService, jwtSecret)
		department.RegisterRoutes(api, departmentHandler, rbacService, jwtSecret)
		role.RegisterRoutes(api, roleHandler, rbacService, jwtSecret)
		employee.RegisterRoutes(api, employeeHandler, rbacService, jwtSecret, m.logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, m.rdb, jwtSecret, m.logger)
		rbac.RegisterRoutes(api, rbacHandler, rbacService, jwtSecret)
	}

	return rbacService, nil
}
