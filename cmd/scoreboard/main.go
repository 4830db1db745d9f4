// Command scoreboard serves the persisted high scores over HTTP, read-only.
// It uses the same SCORES_* settings as the game, so pointing both at one
// file or database shows wins as they happen.
package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/internal/config"
	"github.com/robalobadob/guess/internal/httpserver"
	"github.com/robalobadob/guess/internal/scores"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	cfg.SetupLogging()

	st, closer, err := scores.Open(cfg.StoreOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open score store")
	}
	defer closer.Close()

	srv := httpserver.New(st, cfg.ClientOrigin)
	log.Info().Str("port", cfg.ScoreboardPort).Str("backend", cfg.ScoresBackend).Msg("starting scoreboard")
	if err := srv.Start(":" + cfg.ScoreboardPort); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
