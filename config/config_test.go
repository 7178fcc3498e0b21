package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(func(string) string { return "" })
	assert.Equal(t, AppConfig{
		Port:           "8080",
		Timezone:       "America/New_York",
		DBPath:         "sparc.db",
		LogLevel:       "info",
		LogJSON:        true,
		DevUID:         "dev-user",
		SearchDebounce: 300 * time.Millisecond,
	}, cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":               "9000",
		"TZ":                 "UTC",
		"DEV_LOGIN":          "true",
		"ADMIN_UIDS":         " a1, ,b2 ",
		"SEARCH_DEBOUNCE_MS": "150",
		"LOG_JSON":           "false",
	}
	cfg := FromEnv(func(k string) string { return env[k] })
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.True(t, cfg.DevLogin)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, []string{"a1", "b2"}, cfg.AdminUIDs)
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)

	cfg = FromEnv(func(k string) string {
		if k == "SEARCH_DEBOUNCE_MS" {
			return "soon"
		}
		return ""
	})
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
}
