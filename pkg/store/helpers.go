package store

import (
	"context"

	"gorm.io/gorm"
)

// ============================================================================
// Generic GORM Helpers
// ============================================================================
//
// These helpers reduce repetitive CRUD boilerplate across store implementation
// files. They are unexported (package-internal) and operate on the raw *gorm.DB
// so they compose with transactions. Each helper handles standard concerns like
// context propagation, preloading, not-found error conversion, and unique
// constraint detection.

// getByField retrieves a single record of type T by matching field=value.
// It applies optional GORM Preload clauses and converts gorm.ErrRecordNotFound
// to the provided notFoundErr for consistent domain error mapping.
//
// Example:
//
//	user, err := getByField[models.User](db, ctx, "id", 7, models.ErrUserNotFound)
func getByField[T any](db *gorm.DB, ctx context.Context, field string, value any, notFoundErr error, preloads ...string) (*T, error) {
	var result T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Where(field+" = ?", value).First(&result).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// listAll retrieves all records of type T ordered by the given clause,
// applying optional GORM Preload clauses.
//
// Example:
//
//	users, err := listAll[models.User](db, ctx, "id")
func listAll[T any](db *gorm.DB, ctx context.Context, order string, preloads ...string) ([]*T, error) {
	var results []*T
	q := db.WithContext(ctx)
	if order != "" {
		q = q.Order(order)
	}
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// create inserts the entity. Unique constraint violations are converted to
// dupErr for consistent error handling; generated IDs are set on the entity
// by GORM.
//
// Example:
//
//	err := create(db, ctx, like, models.ErrDuplicateLike)
func create[T any](db *gorm.DB, ctx context.Context, entity *T, dupErr error) error {
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		if isUniqueConstraintError(err) {
			return dupErr
		}
		return err
	}
	return nil
}

// exists reports whether any record of type T matches the condition.
//
// Example:
//
//	ok, err := exists[models.Tweet](db, ctx, "id = ?", 7)
func exists[T any](db *gorm.DB, ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	var zero T
	if err := db.WithContext(ctx).Model(&zero).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
