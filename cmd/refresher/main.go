package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"ella_estate/internal/adapters/observability"
	"ella_estate/internal/adapters/places"
	"ella_estate/internal/adapters/redisad"
	"ella_estate/internal/app"
	"ella_estate/internal/shared"
	mysqlrepo "ella_estate/internal/storage/mysql"
)

// The refresher warms the review cache for every configured listing and
// archives each fetched snapshot so rating history survives cache eviction.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.Workers).
		Int("places", len(cfg.PlaceIDs)).
		Msg("refresher starting")

	if len(cfg.PlaceIDs) == 0 {
		log.Fatal().Msg("no place ids configured; set GOOGLE_PLACE_ID or GOOGLE_PLACE_IDS")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, id := range cfg.PlaceIDs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(placeID string) {
			defer wg.Done()
			defer sem.Release(1)

			src, err := places.New("", cfg.APIKey, placeID, 5)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize places client")
			}
			svc := app.NewReviewsService(src, cache, cfg.ReviewsTTL,
				app.WithSnapshotKey(app.SnapshotKeyFor(placeID)))

			snap, err := svc.Snapshot(ctx, true)
			if err != nil {
				log.Warn().Str("place", placeID).Err(err).Msg("refresh failed")
				return
			}
			if snap.Stale {
				// fetch failed and the cache served the previous copy, which
				// was archived on its own refresh already
				log.Warn().Str("place", placeID).Msg("served stale snapshot, skipping archive")
				return
			}
			observability.SnapshotReviews.WithLabelValues("places").Set(float64(len(snap.Reviews)))

			if err := repo.ArchiveSnapshot(ctx, placeID, snap); err != nil {
				log.Warn().Str("place", placeID).Err(err).Msg("archive failed")
				return
			}
			log.Info().
				Str("place", placeID).
				Int("reviews", len(snap.Reviews)).
				Float64("avg", snap.AverageRating).
				Msg("refresh ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("refresh completed")
}
