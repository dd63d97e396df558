package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicateKey indicates an insert collided with an existing natural key
// (student_number, staff_id or receipt_number).
var ErrDuplicateKey = errors.New("duplicate natural key")

// translateError maps gorm error values onto the store's taxonomy.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}
