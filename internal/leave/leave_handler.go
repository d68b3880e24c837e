package leave

import (
	"context"
	"net/http"
	"strings"

	"go-hrsuit/internal/domain"
	leaveerrors "go-hrsuit/internal/leave/errors"
	"go-hrsuit/internal/middleware"
	"go-hrsuit/internal/shared/apperror"
	"go-hrsuit/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Apply(c *gin.Context) {
	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		h.logger.Warn("apply leave validation failed", zap.Error(err))
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetByID lets admins read any leave; other roles only see their own.
func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if c.GetString(middleware.ContextRole) != domain.RoleAdmin &&
		resp.UserID != c.GetString(middleware.ContextUserID) {
		h.writeServiceError(c, leaveerrors.ErrLeaveNotFound)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	filter := listFilter(c)
	filter.Status = Status(strings.ToLower(strings.TrimSpace(c.Query("status"))))
	h.list(c, filter, h.service.List)
}

func (h *Handler) ListPending(c *gin.Context) {
	h.list(c, listFilter(c), h.service.ListPending)
}

func (h *Handler) ListApproved(c *gin.Context) {
	h.list(c, listFilter(c), h.service.ListApproved)
}

func (h *Handler) ListRejected(c *gin.Context) {
	h.list(c, listFilter(c), h.service.ListRejected)
}

func (h *Handler) ListCancelled(c *gin.Context) {
	h.list(c, listFilter(c), h.service.ListCancelled)
}

func (h *Handler) ListMine(c *gin.Context) {
	actorID := c.GetString(middleware.ContextUserID)
	h.list(c, listFilter(c), func(ctx context.Context, filter ListFilter) (ListResponse, error) {
		return h.service.ListMine(ctx, actorID, filter)
	})
}

func listFilter(c *gin.Context) ListFilter {
	page, pageSize := response.Page(c)
	return ListFilter{
		Q:        strings.TrimSpace(c.Query("q")),
		Page:     page,
		PageSize: pageSize,
	}
}

func (h *Handler) list(
	c *gin.Context,
	filter ListFilter,
	fetch func(ctx context.Context, filter ListFilter) (ListResponse, error),
) {
	resp, err := fetch(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(resp.Total, filter.Page, filter.PageSize)
	response.Success(c, http.StatusOK, resp.Items, &meta)
}

func (h *Handler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

func (h *Handler) Unapprove(c *gin.Context) {
	h.transition(c, h.service.Unapprove)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *Handler) Uncancel(c *gin.Context) {
	h.transition(c, h.service.Uncancel)
}

func (h *Handler) Reject(c *gin.Context) {
	h.transition(c, h.service.Reject)
}

func (h *Handler) Unreject(c *gin.Context) {
	h.transition(c, h.service.Unreject)
}

func (h *Handler) transition(c *gin.Context, action func(ctx context.Context, actorID, id string) (LeaveResponse, error)) {
	resp, err := action(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	resp, err := h.service.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
