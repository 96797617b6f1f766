package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ListenAddr string
	LogLevel   slog.Level

	// DatabaseURL selects the store by scheme: mongodb, mongodb+srv, postgres, postgresql.
	DatabaseURL   string
	MongoDatabase string
	MaxConns      int
	MinConns      int
	// Migrate applies embedded schema migrations on start (Postgres only).
	Migrate bool

	// BaseURL is the public origin used in badge links, embed snippets and the sitemap.
	BaseURL    string
	DiscordURL string
	// AssetsDir overrides the embedded logo files when set.
	AssetsDir string

	RequestTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.Atoi(v); err == nil {
			return out
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.ParseBool(v); err == nil {
			return out
		}
	}
	return def
}

// Load reads the environment, seeded from .env when one exists. A missing
// DATABASE_URL is reported as an error alongside the otherwise usable
// config so callers can decide.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:            getenv("APP_ENV", "development"),
		ListenAddr:     getenv("LISTEN_ADDR", ":8080"),
		LogLevel:       parseLevel(getenv("LOG_LEVEL", "info")),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MongoDatabase:  getenv("MONGODB_DATABASE", "techstartups"),
		MaxConns:       getenvInt("DB_MAX_CONNS", 10),
		MinConns:       getenvInt("DB_MIN_CONNS", 2),
		Migrate:        getenvBool("DB_MIGRATE", false),
		BaseURL:        strings.TrimRight(getenv("BASE_URL", "https://techstartups.gg"), "/"),
		DiscordURL:     getenv("DISCORD_URL", "https://discord.gg/Xrk5m6svGt"),
		AssetsDir:      os.Getenv("ASSETS_DIR"),
		RequestTimeout: time.Duration(getenvInt("REQUEST_TIMEOUT", 10)) * time.Second,
	}
	if cfg.MinConns > cfg.MaxConns {
		cfg.MinConns = cfg.MaxConns
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL not set")
	}
	return cfg, nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
