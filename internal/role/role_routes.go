package role

import (
	"go-hrsuit/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
) {
	roles := r.Group("/roles")

	roles.Use(middleware.AuthMiddleware(jwtSecret))

	{
		roles.GET("", middleware.RBACAuthorize(rbacService, "role", "read"), h.GetAll)
		roles.POST("", middleware.RBACAuthorize(rbacService, "role", "create"), h.Create)
		roles.GET("/:id", middleware.RBACAuthorize(rbacService, "role", "read"), h.GetByID)
		roles.PUT("/:id", middleware.RBACAuthorize(rbacService, "role", "update"), h.Update)
		roles.DELETE("/:id", middleware.RBACAuthorize(rbacService, "role", "delete"), h.Delete)
	}
}
