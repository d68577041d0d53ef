// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"
)

// Role is the authorization role of an account
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents the user entity
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Email       string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string     `gorm:"not null;size:255" json:"-"`
	Role        Role       `gorm:"not null;size:20;default:'USER'" json:"role"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
