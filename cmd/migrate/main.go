package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"bookmanager/internal/config"
	"bookmanager/internal/platform/logging"
	"bookmanager/internal/store"

	"github.com/alecthomas/kong"
	"github.com/pressly/goose/v3"
)

// migrator is bound into every command's Run method.
type migrator struct {
	ctx   context.Context
	store store.Store
	out   io.Writer
}

type UpCmd struct{}

func (c *UpCmd) Run(m *migrator) error {
	results, err := store.Migrate(m.ctx, m.store)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(m.out, "No pending migrations")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(m.out, "OK   %s (%s)\n", r.Source.Path, r.Duration)
	}
	fmt.Fprintln(m.out, "Migrations applied successfully")
	return nil
}

type DownCmd struct{}

func (c *DownCmd) Run(m *migrator) error {
	return m.store.WithMigrator(func(p *goose.Provider) error {
		result, err := p.Down(m.ctx)
		if err != nil {
			return fmt.Errorf("failed to rollback migrations: %w", err)
		}
		fmt.Fprintf(m.out, "Rolled back %s (%s)\n", result.Source.Path, result.Duration)
		return nil
	})
}

type StatusCmd struct{}

func (c *StatusCmd) Run(m *migrator) error {
	return m.store.WithMigrator(func(p *goose.Provider) error {
		statuses, err := p.Status(m.ctx)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		for _, s := range statuses {
			applied := "-"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(m.out, "%-8s %-20s %s\n", s.State, applied, s.Source.Path)
		}
		return nil
	})
}

func main() {
	config.LoadEnvFiles()
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("migrate"),
		kong.Description("Manage the book database schema."),
		kong.UsageOnError(),
		kong.Writers(out, out),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := logging.New(out, cli.LogLevel)
	st, err := store.Open(ctx, cli.DSN, cli.Timeout)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Debug("connected", "dsn", store.RedactDSN(cli.DSN))

	return kctx.Run(&migrator{ctx: ctx, store: st, out: out})
}
