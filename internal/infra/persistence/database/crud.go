package database

import (
	"context"

	domainerrors "marketplace/internal/domain/errors"

	"gorm.io/gorm"
)

// first loads the single row matching query.
func first[M any](ctx context.Context, db *gorm.DB, notFound *domainerrors.BaseError, details string, query any, args ...any) (*M, error) {
	var m M
	if err := db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		return nil, findError(err, notFound, details)
	}

	return &m, nil
}

// list loads every row matching query ordered by id. A nil query matches all rows.
func list[M any](ctx context.Context, db *gorm.DB, details string, query any, args ...any) ([]M, error) {
	var ms []M
	tx := db.WithContext(ctx).Order("id")
	if query != nil {
		tx = tx.Where(query, args...)
	}
	if err := tx.Find(&ms).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, details)
	}

	return ms, nil
}

// insert creates m; gorm writes the generated id and timestamps back onto it.
func insert[M any](ctx context.Context, db *gorm.DB, m *M, details string) error {
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return writeError(err, details)
	}

	return nil
}

// save overwrites every column of m except its id and creation time.
func save[M any](ctx context.Context, db *gorm.DB, m *M, notFound *domainerrors.BaseError, details string) error {
	result := db.WithContext(ctx).Model(m).Select("*").Omit("ID", "CreatedAt").Updates(m)

	return requireAffected(result, notFound, details)
}

// remove deletes the row with the given id.
func remove[M any](ctx context.Context, db *gorm.DB, id uint64, notFound *domainerrors.BaseError, details string) error {
	result := db.WithContext(ctx).Delete(new(M), id)

	return requireAffected(result, notFound, details)
}
