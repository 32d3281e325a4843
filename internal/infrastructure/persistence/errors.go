package persistence

import (
	"errors"

	"github.com/travelerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error onto the domain error
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
