package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// Google review sources
	ReviewsSource string // places | gbp
	PlaceID       string
	PlaceIDs      []string // refresher can warm several listings
	APIKey        string
	ClientID      string
	ClientSecret  string
	RedirectAddr  string // loopback consent callback listener

	ReviewsTTL     time.Duration
	PageDelay      time.Duration
	ConsentTimeout time.Duration
	DemoMode       bool

	DefaultLang   string
	WhatsAppPhone string
	Workers       int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		// multiStatements is required for the schema bootstrap in the refresher
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/ella?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),

		ReviewsSource: env("REVIEWS_SOURCE", "places"),
		PlaceID:       env("GOOGLE_PLACE_ID", ""),
		APIKey:        env("GOOGLE_API_KEY", ""),
		ClientID:      env("GOOGLE_CLIENT_ID", ""),
		ClientSecret:  env("GOOGLE_CLIENT_SECRET", ""),
		RedirectAddr:  env("OAUTH_REDIRECT_ADDR", "localhost:8089"),

		ReviewsTTL:     time.Duration(atoi("REVIEWS_CACHE_TTL_SECONDS", 1800)) * time.Second,
		PageDelay:      time.Duration(atoi("REVIEWS_PAGE_DELAY_MS", 1000)) * time.Millisecond,
		ConsentTimeout: time.Duration(atoi("CONSENT_TIMEOUT_SECONDS", 180)) * time.Second,
		DemoMode:       env("REVIEWS_DEMO_MODE", "") == "true",

		DefaultLang:   env("DEFAULT_LANG", "he"),
		WhatsAppPhone: env("WHATSAPP_PHONE", ""),
		Workers:       atoi("REFRESH_WORKERS", 4),
	}
	if ids := env("GOOGLE_PLACE_IDS", ""); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.PlaceIDs = append(c.PlaceIDs, id)
			}
		}
	} else if c.PlaceID != "" {
		c.PlaceIDs = []string{c.PlaceID}
	}
	if c.ReviewsSource == "places" && c.APIKey == "" {
		log.Warn().Msg("GOOGLE_API_KEY is empty")
	}
	if c.ReviewsSource == "gbp" && (c.ClientID == "" || c.ClientSecret == "") {
		log.Warn().Msg("GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET incomplete")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
