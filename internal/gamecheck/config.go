package gamecheck

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL   string        // Base URL of the service
	AdminCode string        // Shared admin secret
	Players   int           // Number of players to generate
	Scheme    string        // Catalog scheme the server runs: periods or tiers
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging
}

// Stats holds smoke-run statistics.
type Stats struct {
	PlayersSubmitted   int
	SubmissionsRefused int
	ContractChecks     int
	ContractFailures   int
	OutcomesToggled    int
	LeaderboardSize    int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
