package main

import (
	"context"
	"errors"
	"flag"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-manager/internal/db"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/seed"
)

func main() {
	path := flag.String("file", "seeds/demo.yaml", "fixture to load")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})

	fixture, err := seed.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid fixture")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	shop, err := seed.Apply(context.Background(), db, fixture)
	if errors.Is(err, seed.ErrAlreadySeeded) {
		log.Warn().Str("slug", fixture.Barbershop.Slug).Msg("barbershop already seeded, nothing to do")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	log.Info().
		Str("barbershop_id", shop.ID).
		Str("slug", shop.Slug).
		Int("barbers", len(fixture.Barbers)).
		Int("services", len(fixture.Services)).
		Msg("seed applied")
}
