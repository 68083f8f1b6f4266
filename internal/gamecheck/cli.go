package gamecheck

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/o4villegas/gameday-bingo/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "gamecheck_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the gamecheck tool.
func ShowHelp() {
	os.Stdout.WriteString(`Gameday Bingo Smoke Tool
========================

An end-to-end smoke tool for a running gameday-bingo server: resets the
game, submits players, probes the validation contract, toggles outcomes,
and cross-checks the leaderboard against a local recomputation.

Usage:
  go run cmd/gamecheck/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -admin string
        Admin code for privileged endpoints (or BINGO_ADMIN_CODE)
  -players int
        Number of players to submit (default 25)
  -scheme string
        Catalog scheme the server runs: periods or tiers (default "periods")
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Log file for output (default: gamecheck_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Smoke a local server
  go run cmd/gamecheck/main.go -admin secret

  # Smoke a tiers deployment with more players
  go run cmd/gamecheck/main.go -admin secret -scheme tiers -players 100
`)
}
