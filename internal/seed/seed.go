// Package seed fills empty tables with starter data.  A unit runs only when
// its table has no rows, and each unit runs inside its own transaction so a
// failure leaves the table empty for the next start.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/trialvo/trialvo-backend/internal/repository"
)

var tableName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Unit seeds one table.
type Unit struct {
	Table string
	Run   func(ctx context.Context, tx *sql.Tx) (int, error)
}

// Result reports what a Run did per table.
type Result struct {
	Table    string
	Existing int
	Inserted int
	Skipped  bool
}

// Loader binds a unit list to a pool, for callers that seed more than once
// (the server at boot, the migrate command on demand).
type Loader struct {
	DB    *sql.DB
	Units []Unit
	Log   *zap.Logger
}

func (l Loader) Run(ctx context.Context) ([]Result, error) {
	return Run(ctx, l.DB, l.Units, l.Log)
}

// Run executes units in order and stops at the first failure.
func Run(ctx context.Context, db *sql.DB, units []Unit, log *zap.Logger) ([]Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("seed")

	results := make([]Result, 0, len(units))
	for _, u := range units {
		if !tableName.MatchString(u.Table) || u.Run == nil {
			return results, fmt.Errorf("seed: invalid unit %q", u.Table)
		}
		n, err := repository.CountRows(ctx, db, u.Table)
		if err != nil {
			return results, fmt.Errorf("seed %s: count: %w", u.Table, err)
		}
		if n > 0 {
			log.Info("table already populated, skipping", zap.String("table", u.Table), zap.Int("rows", n))
			results = append(results, Result{Table: u.Table, Existing: n, Skipped: true})
			continue
		}

		inserted, err := runUnit(ctx, db, u)
		if err != nil {
			return results, fmt.Errorf("seed %s: %w", u.Table, err)
		}
		log.Info("seeded", zap.String("table", u.Table), zap.Int("rows", inserted))
		results = append(results, Result{Table: u.Table, Inserted: inserted})
	}
	return results, nil
}

func runUnit(ctx context.Context, db *sql.DB, u Unit) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	n, err := u.Run(ctx, tx)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
