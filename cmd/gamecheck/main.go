package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/o4villegas/gameday-bingo/internal/gamecheck"
)

// Default configuration constants.
const (
	defaultPlayers     = 25
	defaultTimeout     = 10 * time.Second
	defaultRunDeadline = 5 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		adminCode = flag.String("admin", os.Getenv("BINGO_ADMIN_CODE"), "Admin code for privileged endpoints")
		players   = flag.Int("players", defaultPlayers, "Number of players to submit")
		scheme    = flag.String("scheme", "periods", "Catalog scheme the server runs: periods or tiers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile   = flag.String("log", "", "Log file for output (default: gamecheck_TIMESTAMP.log)")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		gamecheck.ShowHelp()
		return
	}

	// Setup logging
	if err := gamecheck.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunDeadline)
	defer cancel()

	config := &gamecheck.Config{
		BaseURL:   *baseURL,
		AdminCode: *adminCode,
		Players:   *players,
		Scheme:    *scheme,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if err := gamecheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
