package db

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	pqUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// IsUniqueViolation reports whether err was raised by a UNIQUE or PRIMARY KEY
// constraint in any of the supported drivers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return false
}

// InsertReturningID runs a single-row INSERT written with `?` placeholders and
// returns the id the database assigned to the new row. PostgreSQL gets a
// RETURNING clause since lib/pq does not implement LastInsertId; the other
// drivers report the id on the result of the same statement.
func InsertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...any) (int64, error) {
	query = strings.TrimRight(strings.TrimSpace(query), ";")
	if q.DriverName() == DriverPostgres {
		var id int64
		row := q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING id"), args...)
		if err := row.Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
