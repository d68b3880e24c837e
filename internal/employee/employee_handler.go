package employee

import (
	"context"
	"net/http"
	"strings"

	employeeerrors "go-hrsuit/internal/employee/errors"
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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	appErr := apperror.MapValidationError(err)
	h.logger.Warn("employee request validation failed", zap.String("path", c.FullPath()), zap.Error(err))
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListActive(c *gin.Context) {
	h.list(c, h.service.ListActive)
}

func (h *Handler) ListAll(c *gin.Context) {
	h.list(c, h.service.ListAll)
}

func (h *Handler) ListBlocked(c *gin.Context) {
	h.list(c, h.service.ListBlocked)
}

func (h *Handler) list(c *gin.Context, fetch func(ctx context.Context, filter ListFilter) (ListResponse, error)) {
	page, pageSize := response.Page(c)
	filter := ListFilter{
		Q:        strings.TrimSpace(c.Query("q")),
		Page:     page,
		PageSize: pageSize,
	}

	resp, err := fetch(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(resp.Total, page, pageSize)
	response.Success(c, http.StatusOK, resp.Items, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Block(c *gin.Context) {
	h.toggle(c, h.service.Block)
}

func (h *Handler) Unblock(c *gin.Context) {
	h.toggle(c, h.service.Unblock)
}

func (h *Handler) Delete(c *gin.Context) {
	h.toggle(c, h.service.Delete)
}

func (h *Handler) Restore(c *gin.Context) {
	h.toggle(c, h.service.Restore)
}

func (h *Handler) toggle(c *gin.Context, action func(ctx context.Context, id string) (EmployeeResponse, error)) {
	resp, err := action(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Invalid input",
			map[string]string{"image": "Image is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.writeServiceError(c, employeeerrors.ErrInvalidImage)
		return
	}
	defer src.Close()

	resp, err := h.service.UploadImage(c.Request.Context(), c.Param("id"), ImageUpload{
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Body:        src,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
