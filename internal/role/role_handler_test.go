package role_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrsuit/internal/role"
	roleerrors "go-hrsuit/internal/role/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRoleService struct {
	CreateFn  func(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error)
	GetAllFn  func(ctx context.Context) ([]role.RoleResponse, error)
	GetByIDFn func(ctx context.Context, id string) (role.RoleResponse, error)
	UpdateFn  func(ctx context.Context, id string, req role.UpdateRoleRequest) (role.RoleResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeRoleService) Create(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeRoleService) GetAll(ctx context.Context) ([]role.RoleResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeRoleService) GetByID(ctx context.Context, id string) (role.RoleResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeRoleService) Update(ctx context.Context, id string, req role.UpdateRoleRequest) (role.RoleResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeRoleService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Ok    bool           `json:"ok"`
		Error map[string]any `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Ok)
	return body.Error
}

func TestRoleHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeRoleService{
			CreateFn: func(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
				return role.RoleResponse{ID: uuid.NewString(), Name: req.Name}, nil
			},
		}

		h := role.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/roles", `{"name":"Manager"}`)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Manager"`)
	})

	t.Run("validation error", func(t *testing.T) {
		h := role.NewHandler(&fakeRoleService{})
		c, w := newTestContext(http.MethodPost, "/roles", `{"description":"no name"}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w)["code"])
	})

	t.Run("name too long", func(t *testing.T) {
		h := role.NewHandler(&fakeRoleService{})
		body := `{"name":"` + strings.Repeat("x", 126) + `"}`
		c, w := newTestContext(http.MethodPost, "/roles", body)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeRoleService{
			CreateFn: func(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
				return role.RoleResponse{}, errors.New("boom")
			},
		}

		h := role.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/roles", `{"name":"Manager"}`)

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, w)["code"])
	})
}

func TestRoleHandler_GetAll(t *testing.T) {
	svc := &fakeRoleService{
		GetAllFn: func(ctx context.Context) ([]role.RoleResponse, error) {
			return []role.RoleResponse{{ID: "1", Name: "Manager"}, {ID: "2", Name: "Engineer"}}, nil
		},
	}

	h := role.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/roles", "")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Engineer"`)
}

func TestRoleHandler_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		svc := &fakeRoleService{
			GetByIDFn: func(ctx context.Context, got string) (role.RoleResponse, error) {
				assert.Equal(t, id, got)
				return role.RoleResponse{ID: got, Name: "Manager"}, nil
			},
		}

		h := role.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/roles/"+id, "")
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.GetByID(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeRoleService{
			GetByIDFn: func(ctx context.Context, id string) (role.RoleResponse, error) {
				return role.RoleResponse{}, roleerrors.ErrRoleNotFound
			},
		}

		h := role.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/roles/x", "")
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w)["code"])
	})
}

func TestRoleHandler_Update(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeRoleService{
		UpdateFn: func(ctx context.Context, got string, req role.UpdateRoleRequest) (role.RoleResponse, error) {
			assert.Equal(t, id, got)
			return role.RoleResponse{ID: got, Name: req.Name}, nil
		},
	}

	h := role.NewHandler(svc)
	c, w := newTestContext(http.MethodPut, "/roles/"+id, `{"name":"Lead"}`)
	c.Params = gin.Params{{Key: "id", Value: id}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Lead"`)
}

func TestRoleHandler_Delete(t *testing.T) {
	id := uuid.NewString()
	called := false
	svc := &fakeRoleService{
		DeleteFn: func(ctx context.Context, got string) error {
			called = true
			assert.Equal(t, id, got)
			return nil
		},
	}

	h := role.NewHandler(svc)
	c, w := newTestContext(http.MethodDelete, "/roles/"+id, "")
	c.Params = gin.Params{{Key: "id", Value: id}}

	h.Delete(c)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}
