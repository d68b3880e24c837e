package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrsuit/internal/auth"
	autherrors "go-hrsuit/internal/auth/errors"
	authMock "go-hrsuit/internal/auth/mock"
	"go-hrsuit/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret"

func newService(t *testing.T) (auth.Service, *authMock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := authMock.NewMockRepository(ctrl)
	return auth.NewService(repo, auth.TokenConfig{Secret: secret}), repo
}

func claimsOf(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(secret), nil })
	assert.NoError(t, err)
	return parsed.Claims.(jwt.MapClaims)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	password := "password123"
	pw, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	admin := &auth.User{
		ID:          uuid.New(),
		Username:    "admin",
		Password:    string(pw),
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}

	t.Run("Success Login", func(t *testing.T) {
		service, repo := newService(t)
		repo.EXPECT().GetByUsername(ctx, "admin").Return(admin, nil)
		repo.EXPECT().TouchLastLogin(ctx, admin.ID, gomock.Any()).Return(nil)

		token, refreshToken, resp, err := service.Login(ctx, " admin ", password)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, resp.Role)
		claims := claimsOf(t, token)
		assert.Equal(t, admin.ID.String(), claims["user_id"])
		assert.Equal(t, domain.RoleAdmin, claims["role"])
		assert.Equal(t, "access", claims["typ"])
		assert.Equal(t, "refresh", claimsOf(t, refreshToken)["typ"])
	})

	t.Run("last_login failure does not block login", func(t *testing.T) {
		service, repo := newService(t)
		repo.EXPECT().GetByUsername(ctx, "admin").Return(admin, nil)
		repo.EXPECT().TouchLastLogin(ctx, admin.ID, gomock.Any()).Return(errors.New("db down"))

		_, _, _, err := service.Login(ctx, "admin", password)

		assert.NoError(t, err)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		service, repo := newService(t)
		repo.EXPECT().GetByUsername(ctx, "admin").Return(admin, nil)

		_, _, _, err := service.Login(ctx, "admin", "wrongpass")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Unknown user", func(t *testing.T) {
		service, repo := newService(t)
		repo.EXPECT().GetByUsername(ctx, "ghost").Return(nil, errors.New("record not found"))

		_, _, _, err := service.Login(ctx, "ghost", password)

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Inactive user", func(t *testing.T) {
		service, repo := newService(t)
		inactive := *admin
		inactive.IsActive = false
		repo.EXPECT().GetByUsername(ctx, "admin").Return(&inactive, nil)

		_, _, _, err := service.Login(ctx, "admin", password)

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	staff := &auth.User{ID: uuid.New(), Username: "jane", IsStaff: true, IsActive: true}

	sign := func(claims jwt.MapClaims) string {
		s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		return s
	}

	t.Run("issues a new pair", func(t *testing.T) {
		service, repo := newService(t)
		repo.EXPECT().GetByID(ctx, staff.ID).Return(staff, nil)

		access, _, resp, err := service.RefreshToken(ctx, sign(jwt.MapClaims{
			"user_id": staff.ID.String(), "typ": "refresh", "exp": time.Now().Add(time.Hour).Unix(),
		}))

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStaff, resp.Role)
		assert.Equal(t, domain.RoleStaff, claimsOf(t, access)["role"])
	})

	t.Run("access token is rejected", func(t *testing.T) {
		service, _ := newService(t)

		_, _, _, err := service.RefreshToken(ctx, sign(jwt.MapClaims{"user_id": staff.ID.String(), "typ": "access"}))

		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		service, _ := newService(t)

		_, _, _, err := service.RefreshToken(ctx, sign(jwt.MapClaims{
			"user_id": staff.ID.String(), "typ": "refresh", "exp": time.Now().Add(-time.Hour).Unix(),
		}))

		assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	req := auth.RegisterRequest{
		Username:        "jane",
		Email:           "jane@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		IsStaff:         true,
	}

	t.Run("Success", func(t *testing.T) {
		service, repo := newService(t)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *auth.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")))
			assert.True(t, u.IsActive)
			return nil
		})

		resp, err := service.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "jane", resp.Username)
		assert.Equal(t, domain.RoleStaff, resp.Role)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		service, repo := newService(t)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_username"})

		_, err := service.Register(ctx, req)

		assert.ErrorIs(t, err, autherrors.ErrUsernameTaken)
	})
}

func TestService_GetMe(t *testing.T) {
	ctx := context.Background()
	user := &auth.User{ID: uuid.New(), Username: "jane"}

	service, repo := newService(t)
	repo.EXPECT().GetByID(ctx, user.ID).Return(user, nil)

	resp, err := service.GetMe(ctx, user.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "jane", resp.Username)

	_, err = service.GetMe(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
}
