package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trialvo/trialvo-backend/internal/config"
	"github.com/trialvo/trialvo-backend/internal/database"
	"github.com/trialvo/trialvo-backend/internal/logger"
	"github.com/trialvo/trialvo-backend/internal/migrate"
	"github.com/trialvo/trialvo-backend/internal/seed"
)

var (
	envFile  string
	logLevel string
	withSeed bool
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the Trialvo database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, cfg config.Config, db *sql.DB, log *zap.Logger) error {
			n, err := migrate.Run(ctx, db, migrate.Units, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			if withSeed {
				return runSeed(ctx, cfg, db, log, cmd.OutOrStdout())
			}
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they have been applied",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, _ config.Config, db *sql.DB, log *zap.Logger) error {
			m, err := migrate.New(db, migrate.Units, log)
			if err != nil {
				return err
			}
			st, err := m.Status(ctx)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed empty tables with starter data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, cfg config.Config, db *sql.DB, log *zap.Logger) error {
			return runSeed(ctx, cfg, db, log, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	upCmd.Flags().BoolVar(&withSeed, "seed", false, "seed empty tables after migrating")

	rootCmd.AddCommand(upCmd, statusCmd, seedCmd)
}

type dbFunc func(ctx context.Context, cfg config.Config, db *sql.DB, log *zap.Logger) error

func withDB(parent context.Context, fn dbFunc) error {
	config.LoadDotEnv(envFile)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Options{Level: logLevel, Format: "console"})
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, 5*time.Minute)
	defer cancel()
	return fn(ctx, cfg, db, log)
}

func runSeed(ctx context.Context, cfg config.Config, db *sql.DB, log *zap.Logger, out io.Writer) error {
	res, err := seed.Run(ctx, db, seed.Defaults(cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.BcryptCost), log)
	if err != nil {
		return err
	}
	for _, r := range res {
		if r.Skipped {
			fmt.Fprintf(out, "%-16s skipped (%d rows)\n", r.Table, r.Existing)
			continue
		}
		fmt.Fprintf(out, "%-16s seeded %d row(s)\n", r.Table, r.Inserted)
	}
	return nil
}

func printStatus(out io.Writer, st []migrate.UnitStatus) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tSTATUS\tAPPLIED AT")
	for _, s := range st {
		state, at := "pending", "-"
		if s.Applied {
			state = "applied"
			if s.AppliedAt != nil {
				at = s.AppliedAt.UTC().Format(time.RFC3339)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, state, at)
	}
	_ = w.Flush()
}
