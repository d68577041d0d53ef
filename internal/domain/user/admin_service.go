// internal/domain/user/admin_service.go
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ownedTables hold per-user personal data removed along with the account.
// Orders and library entries are kept as purchase records.
var ownedTables = []string{
	"cart_items",
	"wishlist_items",
	"reviews",
	"achievements",
}

// AdminService handles admin user management
type AdminService struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewAdminService creates a new admin user service
func NewAdminService(db *gorm.DB, log logrus.FieldLogger) *AdminService {
	return &AdminService{db: db, log: log}
}

// UserListRequest represents user list query parameters
type UserListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
	Role   string `form:"role"`
}

// UserListResponse represents user list with pagination
type UserListResponse struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// GetUsers retrieves users with filtering and pagination
func (s *AdminService) GetUsers(ctx context.Context, req *UserListRequest) (*UserListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&User{})

	if req.Search != "" {
		term := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}

	switch strings.ToUpper(req.Role) {
	case string(RoleAdmin):
		query = query.Where("role = ?", RoleAdmin)
	case string(RoleUser):
		query = query.Where("role = ?", RoleUser)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperror.Internal("failed to count users", err)
	}

	var users []User
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("id ASC").Offset(offset).Limit(req.Limit).Find(&users).Error; err != nil {
		return nil, apperror.Internal("failed to retrieve users", err)
	}

	return &UserListResponse{
		Users:      users,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: int((total + int64(req.Limit) - 1) / int64(req.Limit)),
	}, nil
}

// CountUsers returns the number of accounts
func (s *AdminService) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// DeleteUser removes an account and its personal data. Admins cannot
// delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, userID, adminID uint) error {
	if userID == adminID {
		return apperror.InvalidArgument("cannot delete your own account")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&User{}, userID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound(fmt.Sprintf("user %d not found", userID))
		}

		for _, table := range ownedTables {
			if err := tx.Exec("DELETE FROM "+table+" WHERE user_id = ?", userID).Error; err != nil {
				return fmt.Errorf("failed to delete %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		if appErr := apperror.From(err); appErr.Code != apperror.CodeInternal {
			return appErr
		}
		return apperror.Internal("failed to delete user", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "admin_id": adminID}).Warn("user deleted by admin")
	return nil
}
