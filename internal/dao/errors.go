package dao

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDuplicateKeyErr reports whether err is a unique-constraint violation.
// Dialects that translate report gorm.ErrDuplicatedKey; the raw driver
// messages cover the rest.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL (error code 1062)
	if strings.Contains(err.Error(), "Error 1062") {
		return true
	}
	// SQLite
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}
	return false
}
