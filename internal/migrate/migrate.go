// Package migrate applies the schema in named, ordered units and records
// each applied unit in the `_migrations` ledger so it never runs twice.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// LedgerTable records applied unit names.
	LedgerTable = "_migrations"
	// LockName is the MySQL advisory lock held while migrating so that
	// instances starting together apply units one at a time.
	LockName = "trialvo_migrations"
)

const createLedger = `CREATE TABLE IF NOT EXISTS ` + LedgerTable + ` (
  id INT AUTO_INCREMENT PRIMARY KEY,
  name VARCHAR(255) NOT NULL UNIQUE,
  applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// ErrLockTimeout means another process held the migration lock for longer
// than the configured wait.
var ErrLockTimeout = errors.New("timed out waiting for migration lock")

// Execer is what a unit may use to change the schema.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Unit is one named schema change.  Units run in slice order.
type Unit struct {
	Name string
	Up   func(ctx context.Context, db Execer) error
}

// SQL builds a unit that runs a single statement.
func SQL(name, stmt string) Unit {
	return Unit{Name: name, Up: func(ctx context.Context, db Execer) error {
		_, err := db.ExecContext(ctx, stmt)
		return err
	}}
}

// UnitStatus reports whether a unit has been applied.
type UnitStatus struct {
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

// Migrator runs units against db.
type Migrator struct {
	db          *sql.DB
	units       []Unit
	log         *zap.Logger
	LockTimeout time.Duration
}

// New validates the unit list and returns a Migrator.  Names must be
// non-empty and unique.
func New(db *sql.DB, units []Unit, log *zap.Logger) (*Migrator, error) {
	seen := make(map[string]bool, len(units))
	for _, u := range units {
		if u.Name == "" || u.Up == nil {
			return nil, fmt.Errorf("migrate: unit %q is incomplete", u.Name)
		}
		if seen[u.Name] {
			return nil, fmt.Errorf("migrate: duplicate unit %q", u.Name)
		}
		seen[u.Name] = true
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{db: db, units: units, log: log.Named("migrate"), LockTimeout: 30 * time.Second}, nil
}

// Run is shorthand for New followed by Migrator.Run.
func Run(ctx context.Context, db *sql.DB, units []Unit, log *zap.Logger) (int, error) {
	m, err := New(db, units, log)
	if err != nil {
		return 0, err
	}
	return m.Run(ctx)
}

// Run applies every unit missing from the ledger, in order, and returns how
// many were applied.  Zero is a normal outcome.  A unit is recorded only
// after its schema change succeeds; MySQL DDL commits implicitly, so a
// failed ledger insert leaves an applied but unrecorded unit, which is why
// every statement uses IF NOT EXISTS.
func (m *Migrator) Run(ctx context.Context) (int, error) {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrate: acquire connection: %w", err)
	}
	defer conn.Close()

	if err := m.lock(ctx, conn); err != nil {
		return 0, err
	}
	defer m.unlock(conn)

	if _, err := conn.ExecContext(ctx, createLedger); err != nil {
		return 0, fmt.Errorf("migrate: create ledger: %w", err)
	}

	done, err := appliedNames(ctx, conn)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, u := range m.units {
		if _, ok := done[u.Name]; ok {
			continue
		}
		start := time.Now()
		if err := u.Up(ctx, conn); err != nil {
			return applied, fmt.Errorf("migrate: %s: %w", u.Name, err)
		}
		if _, err := conn.ExecContext(ctx, "INSERT INTO "+LedgerTable+" (name) VALUES (?)", u.Name); err != nil {
			return applied, fmt.Errorf("migrate: record %s: %w", u.Name, err)
		}
		applied++
		m.log.Info("applied migration", zap.String("name", u.Name), zap.Duration("took", time.Since(start)))
	}

	if applied == 0 {
		m.log.Info("schema up to date", zap.Int("units", len(m.units)))
	}
	return applied, nil
}

// Status lists every unit in order with its ledger state.
func (m *Migrator) Status(ctx context.Context) ([]UnitStatus, error) {
	if _, err := m.db.ExecContext(ctx, createLedger); err != nil {
		return nil, fmt.Errorf("migrate: create ledger: %w", err)
	}
	rows, err := m.db.QueryContext(ctx, "SELECT name, applied_at FROM "+LedgerTable)
	if err != nil {
		return nil, fmt.Errorf("migrate: read ledger: %w", err)
	}
	defer rows.Close()

	at := map[string]time.Time{}
	for rows.Next() {
		var (
			name string
			ts   time.Time
		)
		if err := rows.Scan(&name, &ts); err != nil {
			return nil, err
		}
		at[name] = ts
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]UnitStatus, 0, len(m.units))
	for _, u := range m.units {
		st := UnitStatus{Name: u.Name}
		if ts, ok := at[u.Name]; ok {
			st.Applied = true
			st.AppliedAt = &ts
		}
		out = append(out, st)
	}
	return out, nil
}

func (m *Migrator) lock(ctx context.Context, conn *sql.Conn) error {
	var got sql.NullInt64
	secs := int(m.LockTimeout / time.Second)
	if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", LockName, secs).Scan(&got); err != nil {
		return fmt.Errorf("migrate: acquire lock: %w", err)
	}
	if !got.Valid || got.Int64 != 1 {
		return ErrLockTimeout
	}
	return nil
}

func (m *Migrator) unlock(conn *sql.Conn) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := conn.ExecContext(ctx, "DO RELEASE_LOCK(?)", LockName); err != nil {
		m.log.Warn("release migration lock", zap.Error(err))
	}
}

func appliedNames(ctx context.Context, conn *sql.Conn) (map[string]struct{}, error) {
	rows, err := conn.QueryContext(ctx, "SELECT name FROM "+LedgerTable)
	if err != nil {
		return nil, fmt.Errorf("migrate: read ledger: %w", err)
	}
	defer rows.Close()

	done := map[string]struct{}{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		done[name] = struct{}{}
	}
	return done, rows.Err()
}
