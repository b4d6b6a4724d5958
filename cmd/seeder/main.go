// Seeds demo hotels and an admin account for local development.
package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotelbook/internal/adapters/auth"
	"hotelbook/internal/adapters/observability"
	"hotelbook/internal/domain"
	"hotelbook/internal/shared"
	mysqlrepo "hotelbook/internal/storage/mysql"
)

var demoHotels = []domain.Hotel{
	{Name: "Le Grand Meridien", Location: "Paris", Description: "Five floors of faded art-deco glory."},
	{Name: "Harbour Light", Location: "Lisbon", Description: "Rooms over the ferry docks."},
	{Name: "Pension Alpenrose", Location: "Innsbruck", Description: "Family-run, ski storage in the cellar."},
	{Name: "The Old Printworks", Location: "Manchester", Description: "Converted 1890s print hall."},
	{Name: "Casa Azul", Location: "Valencia", Description: "Blue-tiled courtyard, roof terrace."},
	{Name: "Hotel Borealis", Location: "Tromso", Description: "Aurora wake-up calls on request."},
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	if err := mysqlrepo.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	hotels := mysqlrepo.NewHotelRepo(db)
	users := mysqlrepo.NewUserRepo(db)

	seedAdmin(ctx, users)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, h := range demoHotels {
		h := h

		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			if _, err := hotels.GetByName(ctx, h.Name); err == nil {
				log.Info().Str("name", h.Name).Msg("hotel already seeded")
				return
			} else if !errors.Is(err, domain.ErrNotFound) {
				log.Warn().Str("name", h.Name).Err(err).Msg("seed lookup failed")
				return
			}
			h.ID = uuid.NewString()
			if err := hotels.Create(ctx, h); err != nil {
				log.Warn().Str("name", h.Name).Err(err).Msg("seed failed")
				return
			}
			log.Info().Str("name", h.Name).Msg("hotel seeded")
		}(h)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

func seedAdmin(ctx context.Context, users *mysqlrepo.UserRepo) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	pass := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || pass == "" {
		log.Info().Msg("SEED_ADMIN_EMAIL/PASSWORD not set, skipping admin seed")
		return
	}
	if _, err := users.GetByEmail(ctx, email); err == nil {
		log.Info().Str("email", email).Msg("admin already seeded")
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Fatal().Err(err).Msg("admin lookup failed")
	}
	digest, err := auth.NewHasher().Hash(pass)
	if err != nil {
		log.Fatal().Err(err).Msg("hash failed")
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Pseudo:       "admin",
		PasswordHash: digest,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}
	log.Info().Str("email", email).Msg("admin seeded")
}
