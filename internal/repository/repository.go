// Package repository holds the GORM implementations of the storage
// interfaces the services consume. Each repository receives the database
// handle at construction; nothing here keeps global state.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
