package application

import (
	"context"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/llm"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/titanous/json5"
)

func TestWithDefaults(t *testing.T) {
	cfg, err := WithDefaults(Config{
		Http:    HttpConfig{Port: 8080},
		Scraper: ScraperConfig{RateLimit: -1},
		Cache:   CacheConfig{Path: "cache.db"},
	})
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Http.Port)
	require.Equal(t, []string{"*"}, cfg.Http.CorsOrigins)
	require.Equal(t, float64(-1), cfg.Scraper.RateLimit)
	require.Equal(t, 15, cfg.Scraper.TimeoutSeconds)
	require.Equal(t, "cache.db", cfg.Cache.Path)
	require.Equal(t, 24*time.Hour, cfg.Cache.TTL())
	require.Equal(t, float32(DEFAULT_TEMPERATURE), *cfg.LLM.Temperature)
}

func TestWithDefaultsKeepsExplicitZero(t *testing.T) {
	ttlHours := 0
	temperature := float32(0)
	cfg, err := WithDefaults(Config{
		LLM:   LLMConfig{Temperature: &temperature},
		Cache: CacheConfig{TTLHours: &ttlHours},
	})
	require.NoError(t, err)
	require.Equal(t, 0, *cfg.Cache.TTLHours)
	require.Equal(t, time.Duration(0), cfg.Cache.TTL())
	require.Equal(t, float32(0), cfg.LLM.temperature())
}

func TestConfigReadsExplicitZero(t *testing.T) {
	var cfg Config
	err := json5.Unmarshal([]byte(`{cache: {ttl_hours: 0}, llm: {temperature: 0}}`), &cfg)
	require.NoError(t, err)
	cfg, err = WithDefaults(cfg)
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), cfg.Cache.TTL())
	require.Equal(t, float32(0), cfg.LLM.temperature())

	cfg, err = WithDefaults(Config{})
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, cfg.Cache.TTL())
}

func TestBuildWithoutKeys(t *testing.T) {
	tel := telemetry.NewMemoryAPI()
	components, err := Build(context.Background(), Config{}, tel)
	require.NoError(t, err)
	require.Nil(t, components.Provider)
	require.Equal(t, llm.DefaultSelection(), components.Models)
	require.NotNil(t, components.Extractor)
	require.NotNil(t, components.BrandData)
	require.Equal(t, time.UTC, components.Time.Location())
	require.True(t, tel.Has(telemetry.REPORT_WARNING, "llm.provider"))
}

func TestBuildBadTimezone(t *testing.T) {
	_, err := Build(context.Background(), Config{Timezone: "Mars/Olympus_Mons"}, telemetry.NewMemoryAPI())
	require.Error(t, err)
}
