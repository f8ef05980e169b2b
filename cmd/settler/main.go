// Command settler processes a CSV of account operations and prints the
// final balance snapshot to stdout.
//
// Usage:
//
//	settler transactions.csv > accounts.csv
//
// Diagnostics go to stderr as structured JSON; set SETTLER_LOG_LEVEL
// (error, warn, info, debug) to adjust verbosity. Rejected operations never
// affect the exit status; malformed input and I/O failures do.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"settler"
	"settler/log"
	"settler/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "settler:", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <transactions.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("expected exactly one input file, got %d arguments", flag.NArg())
	}

	level := log.LevelWarn

	if lvl := os.Getenv("SETTLER_LOG_LEVEL"); lvl != "" {
		parsed, err := log.ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("SETTLER_LOG_LEVEL: %w", err)
		}

		level = parsed
	}

	logger := zap.NewStderr(level)

	ctx := context.Background()
	defer func() { _ = logger.Sync(ctx) }()

	input, err := os.Open(flag.Arg(0))
	if err != nil {
		return fmt.Errorf("opening transactions input file: %w", err)
	}
	defer input.Close()

	return settler.Run(ctx, input, os.Stdout, logger)
}
