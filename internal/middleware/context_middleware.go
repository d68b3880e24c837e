package middleware

import (
	"go-hrsuit/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger attaches a logger scoped to the request id and the
// authenticated user. Mount it after AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rid := contextutil.GetRequestID(ctx)
		if rid == "" {
			rid = c.GetHeader(RequestIDHeader)
		}
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header(RequestIDHeader, rid)

		actor := contextutil.Actor{
			UserID: c.GetString(ContextUserID),
			Role:   c.GetString(ContextRole),
		}

		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithActor(ctx, actor)
		ctx = contextutil.WithLogger(ctx, logger.With(contextutil.Fields(ctx)...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
