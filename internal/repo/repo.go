package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mhoudali/interim_app/internal/apperr"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// translate keeps raw gorm errors from leaking past the repository.
// The unique indexes are the real integrity guardians; a duplicate-key
// failure surfaces as a plain conflict.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.ErrConflict
	default:
		return err
	}
}
