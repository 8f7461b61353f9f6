package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"property-management/internal/database"
)

// DefaultLimit is applied when a list call does not ask for a page size.
const DefaultLimit = 100

// ListOptions narrows a List or Count call. Zero values mean "no filter".
type ListOptions struct {
	Skip       int
	Limit      int
	Status     string
	PropertyID *uint
	TenantID   *uint
}

// Repository is the per-entity CRUD surface over a single table.
type Repository[T any] struct {
	db   *gorm.DB
	name string
}

func NewRepository[T any](db *gorm.DB, name string) Repository[T] {
	return Repository[T]{db: db, name: name}
}

func (r Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var out T
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, wrapErr(err, fmt.Sprintf("get %s %d", r.name, id))
	}
	return &out, nil
}

// GetForUpdate loads the row and holds a row lock until the surrounding
// transaction ends. Dialects without row locks fall back to a plain read.
func (r Repository[T]) GetForUpdate(ctx context.Context, id uint) (*T, error) {
	q := r.db.WithContext(ctx)
	if database.SupportsRowLocks(q) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var out T
	if err := q.First(&out, id).Error; err != nil {
		return nil, wrapErr(err, fmt.Sprintf("lock %s %d", r.name, id))
	}
	return &out, nil
}

func (r Repository[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]T, 0)
	err := r.filtered(ctx, opts).
		Order("id").
		Offset(max(opts.Skip, 0)).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, wrapErr(err, "list "+r.name)
	}
	return out, nil
}

func (r Repository[T]) Count(ctx context.Context, opts ListOptions) (int64, error) {
	var n int64
	if err := r.filtered(ctx, opts).Count(&n).Error; err != nil {
		return 0, wrapErr(err, "count "+r.name)
	}
	return n, nil
}

func (r Repository[T]) filtered(ctx context.Context, opts ListOptions) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	if opts.PropertyID != nil {
		q = q.Where("property_id = ?", *opts.PropertyID)
	}
	if opts.TenantID != nil {
		q = q.Where("tenant_id = ?", *opts.TenantID)
	}
	return q
}

func (r Repository[T]) Create(ctx context.Context, v *T) error {
	return wrapErr(r.db.WithContext(ctx).Create(v).Error, "create "+r.name)
}

// UpdateFields writes the given column values and returns the fresh row.
// A nil map value sets the column to NULL.
func (r Repository[T]) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*T, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error
		if err != nil {
			return nil, wrapErr(err, fmt.Sprintf("update %s %d", r.name, id))
		}
	}
	return r.Get(ctx, id)
}

// UpdateWhere writes fields without reloading the row and returns the number
// of rows changed. A non-empty cond further restricts the update, so callers
// can make a write conditional on the row's current state.
func (r Repository[T]) UpdateWhere(ctx context.Context, id uint, fields map[string]interface{}, cond string, args ...interface{}) (int64, error) {
	q := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id)
	if cond != "" {
		q = q.Where(cond, args...)
	}
	res := q.Updates(fields)
	if res.Error != nil {
		return 0, wrapErr(res.Error, fmt.Sprintf("update %s %d", r.name, id))
	}
	return res.RowsAffected, nil
}

func (r Repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return wrapErr(res.Error, fmt.Sprintf("delete %s %d", r.name, id))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete %s %d: %w", r.name, id, ErrNotFound)
	}
	return nil
}

func (r Repository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, wrapErr(err, fmt.Sprintf("exists %s %d", r.name, id))
	}
	return n > 0, nil
}

// StatusCount is one row of a GROUP BY status aggregate.
type StatusCount struct {
	Status *string
	Count  int64
}

// CountByStatus groups the table by its status column.
func (r Repository[T]) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(new(T)).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapErr(err, "count "+r.name+" by status")
	}
	return rows, nil
}
