// Package repository holds the MySQL data access for the storefront.  Every
// repo works against a DBTX so the same code runs on the pool or inside a
// transaction (seeding uses the latter).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/trialvo/trialvo-backend/internal/patch"
)

// ErrNotFound is returned when a lookup or keyed write matches no row.
// Handlers translate it into 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a unique key, such as a
// duplicate product slug or admin email.  Handlers translate it into 409.
var ErrConflict = errors.New("conflict")

// DBTX is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const errDuplicateEntry = 1062

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == errDuplicateEntry
	}
	return strings.Contains(err.Error(), "1062")
}

// execPatch runs a typed patch keyed by id.  The DSN sets clientFoundRows,
// so an UPDATE that matches a row reports it even when nothing changed.
func execPatch(ctx context.Context, db DBTX, table, id string, fields []patch.Field) error {
	u, err := patch.Build(table, fields)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, u.Statement(), u.ArgsWithID(id)...)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, db DBTX, table, id string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRows returns the number of rows in table.  Table names come from
// code, never from requests.
func CountRows(ctx context.Context, db DBTX, table string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}
