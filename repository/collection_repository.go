package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"trainingLog/models"
)

// Filter restricts a Count to rows where Column equals Value.
// Column must be whitelisted by the collection; Value is always bound.
type Filter struct {
	Column string
	Value  any
}

// CollectionRepository implements the operations that apply to any collection.
// Table names come from models.Collection, never from callers.
type CollectionRepository struct {
	db *sqlx.DB
}

// NewCollectionRepository creates a new CollectionRepository.
func NewCollectionRepository(db *sqlx.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Exists reports whether a row with id exists in the collection.
func (r *CollectionRepository) Exists(ctx context.Context, c models.Collection, id int64) (bool, error) {
	n, err := r.Count(ctx, c, Filter{Column: "id", Value: id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the number of rows in the collection matching all filters.
func (r *CollectionRepository) Count(ctx context.Context, c models.Collection, filters ...Filter) (int, error) {
	table, err := c.Table()
	if err != nil {
		return 0, err
	}
	var (
		where []string
		args  []any
	)
	for _, f := range filters {
		if !c.HasColumn(f.Column) {
			return 0, fmt.Errorf("column %q is not filterable on %s", f.Column, table)
		}
		where = append(where, f.Column+" = ?")
		args = append(args, f.Value)
	}
	query := "SELECT COUNT(*) FROM " + table
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(query), args...); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes the row with id from the collection and reports whether a row was removed.
func (r *CollectionRepository) Delete(ctx context.Context, c models.Collection, id int64) (bool, error) {
	table, err := c.Table()
	if err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM "+table+" WHERE id = ?"), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
