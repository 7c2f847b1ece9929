package main

import (
	"time"
)

// CLI is the migrate command line. Connection settings fall back to the
// same environment variables the API server reads.
type CLI struct {
	DSN      string        `help:"Database DSN (postgres://..., sqlite://path)" env:"DB_DSN" default:"sqlite://books.db"`
	Timeout  time.Duration `help:"Timeout for connecting and for each query" env:"DB_TIMEOUT" default:"5s"`
	LogLevel string        `help:"Log level (debug, info, warn, error)" env:"LOG_LEVEL" default:"info"`

	Up     UpCmd     `cmd:"" default:"1" help:"Apply all pending migrations"`
	Down   DownCmd   `cmd:"" help:"Roll back the most recent migration"`
	Status StatusCmd `cmd:"" help:"List applied and pending migrations"`
}
