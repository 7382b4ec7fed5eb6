package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-hrm/internal/shared/contextutil"
	usererrors "go-hrm/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	ResetPassword(ctx context.Context, id, newPassword string) error
	ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error
	Delete(ctx context.Context, id string) error
	EnsureAdmin(ctx context.Context, username, password string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	role, ok := NormalizeRole(req.Role)
	if !ok {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        optionalString(req.Email),
		PasswordHash: hashed,
		Role:         role,
		EmployeeID:   optionalUUID(req.EmployeeID),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Warn("create user failed", zap.String("username", u.Username), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
		zap.String("role", u.Role),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = mapToResponse(u)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	role, ok := NormalizeRole(req.Role)
	if !ok {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	u.FullName = strings.TrimSpace(req.FullName)
	u.Email = optionalString(req.Email)
	u.Role = role
	u.EmployeeID = optionalUUID(req.EmployeeID)
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) ResetPassword(ctx context.Context, id, newPassword string) error {
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed

	if err := s.repo.Update(ctx, u); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("password reset",
		zap.String("user_id", id),
		zap.String("by", contextutil.GetUserID(ctx)),
	)
	return nil
}

func (s *service) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error {
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed
	return mapRepositoryError(s.repo.Update(ctx, u))
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}
	if id == contextutil.GetUserID(ctx) {
		return usererrors.ErrCannotDeleteSelf
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

// EnsureAdmin creates the first admin account when none exists yet.
func (s *service) EnsureAdmin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil
	}

	n, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	_, err = s.Create(ctx, CreateUserRequest{
		Username: username,
		FullName: "Administrator",
		Password: password,
		Role:     RoleAdmin,
	})
	if err != nil && !errors.Is(err, usererrors.ErrUsernameTaken) {
		return err
	}
	return nil
}

func (s *service) find(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func optionalUUID(v string) *uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &id
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
	if u.Email != nil {
		resp.Email = *u.Email
	}
	if u.EmployeeID != nil {
		resp.EmployeeID = u.EmployeeID.String()
	}
	if u.Employee != nil {
		resp.EmployeeCode = u.Employee.EmployeeCode
		resp.EmployeeName = u.Employee.FullName()
	}
	if u.LastLoginAt != nil {
		resp.LastLoginAt = u.LastLoginAt.Format(time.RFC3339)
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
