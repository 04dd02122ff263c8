package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFoundError reports whether err represents a missing row at the storage
// layer. Services translate this into their own NotFound sentinels.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
