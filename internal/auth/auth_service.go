package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/shared/token"
	"go-hrm/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Users is the part of the user store that sessions need.
type Users interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	Me(ctx context.Context, userID string) (SessionUser, error)
}

type service struct {
	users  Users
	issuer *token.Issuer
	now    func() time.Time
	logger *zap.Logger
}

func NewService(users Users, issuer *token.Issuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, issuer: issuer, now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Session{}, autherrors.ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("login rejected", zap.String("username", req.Username))
		return Session{}, autherrors.ErrInvalidCredentials
	}
	if !u.IsActive {
		return Session{}, autherrors.ErrUserInactive
	}

	sess, err := s.issue(u)
	if err != nil {
		return Session{}, err
	}

	if err := s.users.TouchLastLogin(ctx, u.ID.String(), s.now()); err != nil {
		s.logger.Warn("record last login failed", zap.String("user_id", u.ID.String()), zap.Error(err))
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return sess, nil
}

// Refresh rotates both tokens; the account is re-read so role changes and
// deactivation take effect.
func (s *service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := s.issuer.Parse(refreshToken, token.KindRefresh)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return Session{}, autherrors.ErrTokenExpired
		}
		return Session{}, autherrors.ErrInvalidRefreshToken
	}

	u, err := s.load(ctx, claims.UserID)
	if err != nil {
		return Session{}, err
	}
	if !u.IsActive {
		return Session{}, autherrors.ErrUserInactive
	}
	return s.issue(u)
}

func (s *service) Me(ctx context.Context, userID string) (SessionUser, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return SessionUser{}, err
	}
	return toSessionUser(u), nil
}

func (s *service) load(ctx context.Context, userID string) (*user.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) issue(u *user.User) (Session, error) {
	su := toSessionUser(u)
	claims := token.Claims{
		UserID:     su.ID,
		Username:   su.Username,
		Role:       su.Role,
		EmployeeID: su.EmployeeID,
	}

	claims.Kind = token.KindAccess
	access, err := s.issuer.Sign(claims, token.AccessTTL)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return Session{}, autherrors.ErrTokenGenerationFailed
	}

	claims.Kind = token.KindRefresh
	refresh, err := s.issuer.Sign(claims, token.RefreshTTL)
	if err != nil {
		s.logger.Error("sign refresh token failed", zap.Error(err))
		return Session{}, autherrors.ErrTokenGenerationFailed
	}

	return Session{User: su, AccessToken: access, RefreshToken: refresh}, nil
}

func toSessionUser(u *user.User) SessionUser {
	su := SessionUser{
		ID:       u.ID.String(),
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}
	if u.EmployeeID != nil {
		su.EmployeeID = u.EmployeeID.String()
	}
	return su
}
