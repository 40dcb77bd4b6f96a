package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidSortField is returned when a list is asked to sort on a
	// column outside the whitelist.
	ErrInvalidSortField = errors.New("invalid sort field")
)

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is a unique-constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// paginate applies skip/limit; a non-positive limit means no limit.
func paginate(skip, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skip > 0 {
			db = db.Offset(skip)
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}
