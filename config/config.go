package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type AppConfig struct {
	Port           string
	Timezone       string
	DBPath         string
	LogLevel       string
	LogJSON        bool
	DevLogin       bool
	DevUID         string
	AdminUIDs      []string
	SearchDebounce time.Duration
}

// Load reads an optional .env file and then the environment. It reports
// whether a .env file was found so the caller can log it once a logger
// exists.
func Load() (AppConfig, bool) {
	found := godotenv.Load() == nil
	return FromEnv(os.Getenv), found
}

// FromEnv builds the config from a lookup function; empty values take the
// defaults.
func FromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}
	debounce, err := strconv.Atoi(get("SEARCH_DEBOUNCE_MS", "300"))
	if err != nil || debounce < 0 {
		debounce = 300
	}
	return AppConfig{
		Port:           get("PORT", "8080"),
		Timezone:       get("TZ", "America/New_York"),
		DBPath:         get("DB_PATH", "sparc.db"),
		LogLevel:       get("LOG_LEVEL", "info"),
		LogJSON:        get("LOG_JSON", "true") == "true",
		DevLogin:       get("DEV_LOGIN", "false") == "true",
		DevUID:         get("DEV_UID", "dev-user"),
		AdminUIDs:      splitList(get("ADMIN_UIDS", "")),
		SearchDebounce: time.Duration(debounce) * time.Millisecond,
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Fields renders the config for a startup log line.
func (c AppConfig) Fields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("tz", c.Timezone),
		zap.String("db_path", c.DBPath),
		zap.String("log_level", c.LogLevel),
		zap.Bool("dev_login", c.DevLogin),
		zap.Strings("admin_uids", c.AdminUIDs),
		zap.Duration("search_debounce", c.SearchDebounce),
	}
}
