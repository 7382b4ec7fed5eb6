package user_test

import (
	"context"
	"testing"

	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/user"
	usererrors "go-hrm/internal/user/errors"
	userMock "go-hrm/internal/user/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (user.Service, *userMock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := userMock.NewMockRepository(ctrl)
	return user.NewService(repo), repo
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password and normalizes role", func(t *testing.T) {
		svc, repo := setupService(t)

		repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, "nurse.ani", u.Username)
				assert.Equal(t, user.RoleUser, u.Role)
				assert.Nil(t, u.Email)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))
				return nil
			})

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Username: " nurse.ani ",
			FullName: "Ani Lestari",
			Password: "s3cret-pass",
			Role:     "user",
		})

		require.NoError(t, err)
		assert.Equal(t, "User", resp.Role)
		assert.True(t, resp.IsActive)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Create(ctx, user.CreateUserRequest{Username: "x", Password: "12345678", Role: "Owner"})
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc, repo := setupService(t)

		repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_username"})

		_, err := svc.Create(ctx, user.CreateUserRequest{Username: "admin", FullName: "A", Password: "12345678", Role: "Admin"})
		assert.ErrorIs(t, err, usererrors.ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, repo := setupService(t)

		repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"})

		_, err := svc.Create(ctx, user.CreateUserRequest{Username: "b", FullName: "B", Email: "b@x.io", Password: "12345678", Role: "User"})
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	hashed, err := user.HashPassword("old-password")
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		svc, repo := setupService(t)
		repo.EXPECT().FindByID(ctx, id.String()).Return(&user.User{ID: id, PasswordHash: hashed}, nil)

		err := svc.ChangePassword(ctx, id.String(), user.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "new-password"})
		assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
	})

	t.Run("rotates hash", func(t *testing.T) {
		svc, repo := setupService(t)
		repo.EXPECT().FindByID(ctx, id.String()).Return(&user.User{ID: id, PasswordHash: hashed}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")))
				return nil
			})

		err := svc.ChangePassword(ctx, id.String(), user.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})
		assert.NoError(t, err)
	})
}

func TestUserService_ResetPassword_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupService(t)

	id := uuid.NewString()
	repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

	err := svc.ResetPassword(ctx, id, "brand-new-pass")
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	self := uuid.NewString()
	ctx := contextutil.WithPrincipal(context.Background(), contextutil.Principal{UserID: self, Role: "Admin"})

	t.Run("cannot delete self", func(t *testing.T) {
		svc, _ := setupService(t)
		assert.ErrorIs(t, svc.Delete(ctx, self), usererrors.ErrCannotDeleteSelf)
	})

	t.Run("other user", func(t *testing.T) {
		svc, repo := setupService(t)
		other := uuid.NewString()
		repo.EXPECT().Delete(ctx, other).Return(nil)

		assert.NoError(t, svc.Delete(ctx, other))
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo := setupService(t)
		other := uuid.NewString()
		repo.EXPECT().Delete(ctx, other).Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, other), usererrors.ErrUserNotFound)
	})
}

func TestUserService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("skips when an admin exists", func(t *testing.T) {
		svc, repo := setupService(t)
		repo.EXPECT().CountAdmins(ctx).Return(int64(1), nil)

		assert.NoError(t, svc.EnsureAdmin(ctx, "admin", "changeme123"))
	})

	t.Run("creates the first admin", func(t *testing.T) {
		svc, repo := setupService(t)
		repo.EXPECT().CountAdmins(ctx).Return(int64(0), nil)
		repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, user.RoleAdmin, u.Role)
				assert.Equal(t, "admin", u.Username)
				return nil
			})

		assert.NoError(t, svc.EnsureAdmin(ctx, "admin", "changeme123"))
	})

	t.Run("no credentials configured", func(t *testing.T) {
		svc, _ := setupService(t)
		assert.NoError(t, svc.EnsureAdmin(ctx, "", ""))
	})
}

func TestNormalizeRole(t *testing.T) {
	role, ok := user.NormalizeRole(" ADMIN ")
	assert.True(t, ok)
	assert.Equal(t, user.RoleAdmin, role)

	_, ok = user.NormalizeRole("superuser")
	assert.False(t, ok)
}
