// Package dbutil holds small helpers shared by the gorm repositories.
package dbutil

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDuplicateKey reports whether err is a unique constraint violation.
// Dialectors that do not translate errors are matched by message.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// IsNotFound reports whether err is gorm's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Exists runs a COUNT over the scoped query and reports whether any row matched.
func Exists(db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
