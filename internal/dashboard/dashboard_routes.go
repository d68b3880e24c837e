package dashboard

import (
	"go-hrsuit/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, jwtSecret string) {
	r.GET("/dashboard",
		middleware.AuthMiddleware(jwtSecret),
		middleware.RBACAuthorize(rbacService, "dashboard", "read"),
		handler.Summary,
	)
}
