package leave

import (
	"go-hrsuit/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb redis.Cmdable,
	jwtSecret string,
	logger *zap.Logger,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(jwtSecret))
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Apply,
		)

		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.List)
		leaves.GET("/mine", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.ListMine)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListPending)
		leaves.GET("/approved", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListApproved)
		leaves.GET("/rejected", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListRejected)
		leaves.GET("/cancelled", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListCancelled)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.GetByID)
		leaves.GET("/:id/history", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.History)

		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/unapprove", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Unapprove)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), handler.Cancel)
		leaves.POST("/:id/uncancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), handler.Uncancel)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "reject"), handler.Reject)
		leaves.POST("/:id/unreject", middleware.RBACAuthorize(rbacService, "leave", "reject"), handler.Unreject)
	}
}
