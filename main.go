package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/internal/config"
	"github.com/robalobadob/guess/internal/console"
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

	ctx := context.Background()
	rec, err := st.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load high scores")
	}
	ev := log.Info().Str("backend", cfg.ScoresBackend)
	if fs, ok := st.(*scores.FileStore); ok {
		ev = ev.Str("path", fs.Path())
	}
	ev.Msg("high scores loaded")

	c := console.New(os.Stdin, os.Stdout, st, rec)
	if err := c.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
