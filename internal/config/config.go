// internal/config/config.go
//
// Environment-driven configuration shared by the game and the scoreboard.
// Call godotenv.Load() before FromEnv to pick up a local .env file.
// Every default reproduces the plain "guess" behavior: JSON scores in
// ./high_scores.json and quiet logs.

package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/internal/scores"
)

// Config holds every tunable read from the environment.
type Config struct {
	LogLevel  string // LOG_LEVEL, zerolog level name
	LogFormat string // LOG_FORMAT, "json" or "console"

	ScoresBackend string // SCORES_BACKEND, "json" | "sqlite" | "memory"
	ScoresFile    string // SCORES_FILE
	ScoresDB      string // SCORES_DB

	ScoreboardPort string // SCOREBOARD_PORT
	ClientOrigin   string // CLIENT_ORIGIN, allowed CORS origin for the scoreboard
}

// FromEnv reads Config, falling back to defaults for unset variables.
func FromEnv() Config {
	return Config{
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "json")),
		ScoresBackend:  strings.ToLower(getEnv("SCORES_BACKEND", scores.BackendJSON)),
		ScoresFile:     getEnv("SCORES_FILE", scores.DefaultFile),
		ScoresDB:       getEnv("SCORES_DB", scores.DefaultDSN),
		ScoreboardPort: getEnv("SCOREBOARD_PORT", "5176"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
}

// StoreOptions maps the scores settings onto scores.Open.
func (c Config) StoreOptions() scores.Options {
	return scores.Options{
		Backend: c.ScoresBackend,
		File:    c.ScoresFile,
		DSN:     c.ScoresDB,
	}
}

// SetupLogging applies the level and format to the global zerolog logger.
// Logs always go to stderr so stdout stays reserved for the game.
func (c Config) SetupLogging() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
