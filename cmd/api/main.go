package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"ella_estate/internal/adapters/consent"
	"ella_estate/internal/adapters/gbp"
	server "ella_estate/internal/adapters/http_server"
	"ella_estate/internal/adapters/observability"
	"ella_estate/internal/adapters/places"
	"ella_estate/internal/adapters/redisad"
	"ella_estate/internal/app"
	"ella_estate/internal/domain"
	"ella_estate/internal/shared"
	mysqlrepo "ella_estate/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	src := newReviewSource(cfg)

	var reviewOpts []app.ReviewsOption
	if cfg.ReviewsSource != "gbp" {
		// same key the refresher warms, so its pre-fetch is actually served
		reviewOpts = append(reviewOpts, app.WithSnapshotKey(app.SnapshotKeyFor(cfg.PlaceID)))
	}
	if cfg.DemoMode {
		reviewOpts = append(reviewOpts, app.WithDemoSnapshot(app.DemoSnapshot()))
	}

	h := &server.Handlers{
		Reviews: app.NewReviewsService(src, cache, cfg.ReviewsTTL, reviewOpts...),
		Content: app.NewContentService(cache, cfg.ReviewsTTL),
		Contact: app.NewContactService(repo, cfg.WhatsAppPhone),
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	log.Info().Str("addr", cfg.HTTPAddr).Str("source", cfg.ReviewsSource).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// newReviewSource picks the fetch path: the API-key Places client by default,
// or the OAuth Business Profile client with a loopback consent listener.
func newReviewSource(cfg shared.Config) domain.ReviewSource {
	switch cfg.ReviewsSource {
	case "gbp":
		conf := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       []string{"https://www.googleapis.com/auth/business.manage"},
			Endpoint:     google.Endpoint,
		}
		flow := consent.NewLoopback(conf, cfg.RedirectAddr, cfg.ConsentTimeout, log.Logger)
		src, err := gbp.New("", conf, flow, gbp.WithPageDelay(cfg.PageDelay))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize business profile client")
		}
		return src
	default:
		src, err := places.New("", cfg.APIKey, cfg.PlaceID, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize places client")
		}
		return src
	}
}
