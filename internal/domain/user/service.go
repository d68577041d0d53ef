// internal/domain/user/service.go
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/auth"
	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	log             logrus.FieldLogger
}

// NewService creates a new user service
func NewService(db *gorm.DB, passwords *auth.PasswordManager, tokens *auth.JWTManager, log logrus.FieldLogger) *Service {
	return &Service{
		db:              db,
		passwordManager: passwords,
		jwtManager:      tokens,
		log:             log,
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents user login data. Login accepts either the
// username or the email address.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User *User `json:"user"`
	*auth.TokenPair
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := NormalizeEmail(req.Email)

	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, apperror.Internal("failed to check existing user", err)
	}
	if count > 0 {
		return nil, apperror.Conflict("username or email already registered")
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInvalidArgument, err.Error(), err)
	}

	user := User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if dbutil.IsDuplicateKey(err) {
			return nil, apperror.Conflict("username or email already registered")
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return s.issueTokens(ctx, &user)
}

// Login authenticates a user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	login := strings.TrimSpace(req.Login)

	var user User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, NormalizeEmail(login)).
		First(&user).Error
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, apperror.Unauthorized("invalid username or password")
		}
		return nil, apperror.Internal("failed to load user", err)
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}

	return s.issueTokens(ctx, &user)
}

// RefreshToken generates new tokens using refresh token
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeUnauthorized, "invalid refresh token", err)
	}

	user, err := s.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperror.Unauthorized("user not found")
	}

	return s.issueTokens(ctx, user)
}

func (s *Service) issueTokens(ctx context.Context, user *User) (*AuthResponse, error) {
	pair, err := s.jwtManager.GeneratePair(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, apperror.Internal("failed to generate tokens", err)
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.db.WithContext(ctx).Model(user).Update("last_login_at", now).Error; err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("failed to record last login")
	}

	return &AuthResponse{User: user, TokenPair: pair}, nil
}

// Get loads a user by id
func (s *Service) Get(ctx context.Context, userID uint) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if dbutil.IsNotFound(err) {
			return nil, apperror.NotFound(fmt.Sprintf("user %d not found", userID))
		}
		return nil, apperror.Internal("failed to load user", err)
	}
	return &user, nil
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(ctx context.Context, userID uint) (*User, error) {
	return s.Get(ctx, userID)
}

// Exists reports whether a user with the id exists
func (s *Service) Exists(ctx context.Context, userID uint) (bool, error) {
	ok, err := dbutil.Exists(s.db.WithContext(ctx), &User{}, "id = ?", userID)
	if err != nil {
		return false, apperror.Internal("failed to check user", err)
	}
	return ok, nil
}
