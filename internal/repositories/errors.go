package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is wrapped by every lookup that matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is wrapped when a unique constraint rejects a write.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInUse is wrapped when a delete is rejected because other records reference the row.
	ErrInUse = errors.New("record is referenced by other records")
	// ErrLimitExceeded is returned when a commitment would exceed the deal's per-vendor limit.
	ErrLimitExceeded = errors.New("per-vendor limit exceeded")
)

// translate maps gorm errors onto the package sentinels, keeping the original context.
func translate(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", msg, ErrAlreadyExists)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", msg, ErrInUse)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
