package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFoundError reports whether err wraps a missing-record error from
// the data layer.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
