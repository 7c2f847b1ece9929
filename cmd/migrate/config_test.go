package main

import (
	"os"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("migrate"),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func TestCLI_Defaults(t *testing.T) {
	for _, k := range []string{"DB_DSN", "DB_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cli, ctx := parseCLI(t)

	assert.Equal(t, "up", ctx.Command())
	assert.Equal(t, "sqlite://books.db", cli.DSN)
	assert.Equal(t, 5*time.Second, cli.Timeout)
}

func TestCLI_EnvOverride(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/books")

	cli, ctx := parseCLI(t, "status")

	assert.Equal(t, "status", ctx.Command())
	assert.Equal(t, "postgres://u:p@localhost:5432/books", cli.DSN)
}

func TestCLI_FlagBeatsEnv(t *testing.T) {
	t.Setenv("DB_DSN", "sqlite://from-env.db")

	cli, ctx := parseCLI(t, "--dsn", "sqlite://from-flag.db", "down")

	assert.Equal(t, "down", ctx.Command())
	assert.Equal(t, "sqlite://from-flag.db", cli.DSN)
}
