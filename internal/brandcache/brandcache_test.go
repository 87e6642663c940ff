package brandcache

import (
	"context"
	"diya-backend/internal/components/chrono"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/db"
	"diya-backend/internal/pipeline"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clock is a chrono.API tests can move forward.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time           { return c.now }
func (c *clock) Location() *time.Location { return time.UTC }

// cronRecorder runs nothing, it keeps the callbacks so tests can fire them.
type cronRecorder struct {
	specs     []string
	callbacks []func()
}

func (c *cronRecorder) Cron(spec string, callback func()) error {
	c.specs = append(c.specs, spec)
	c.callbacks = append(c.callbacks, callback)
	return nil
}

var _ chrono.API = (*clock)(nil)
var _ chrono.CronAPI = (*cronRecorder)(nil)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *clock, *telemetry.MemoryAPI) {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	now := &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	tel := telemetry.NewMemoryAPI()
	return NewCache(conn, now, ttl, tel), now, tel
}

func TestNormalizeKey(t *testing.T) {
	testCases := []struct {
		link     string
		expected string
	}{
		{"https://WWW.Acme.com/about/", "acme.com/about"},
		{"acme.com", "acme.com"},
		{"http://acme.com/", "acme.com"},
		{"https://shop.acme.com/Catalog", "shop.acme.com/Catalog"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, NormalizeKey(tc.link), tc.link)
	}
}

func TestPutGet(t *testing.T) {
	cache, _, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	_, err := cache.Get(ctx, "acme.com")
	require.ErrorIs(t, err, ErrNotFound)

	profile := pipeline.FallbackProfile("acme.com", nil)
	require.NoError(t, cache.Put(ctx, "https://www.acme.com/", profile))

	cached, err := cache.Get(ctx, "acme.com")
	require.NoError(t, err)
	require.Equal(t, profile, cached)

	profile.Name = "Acme Rockets"
	require.NoError(t, cache.Put(ctx, "acme.com", profile))
	cached, err = cache.Get(ctx, "http://acme.com")
	require.NoError(t, err)
	require.Equal(t, "Acme Rockets", cached.Name)
}

func TestExpiry(t *testing.T) {
	cache, now, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "acme.com", pipeline.FallbackProfile("acme.com", nil)))

	now.now = now.now.Add(59 * time.Minute)
	_, err := cache.Get(ctx, "acme.com")
	require.NoError(t, err)

	now.now = now.now.Add(2 * time.Minute)
	_, err = cache.Get(ctx, "acme.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNoExpiry(t *testing.T) {
	cache, now, _ := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "acme.com", pipeline.FallbackProfile("acme.com", nil)))
	now.now = now.now.Add(365 * 24 * time.Hour)
	_, err := cache.Get(ctx, "acme.com")
	require.NoError(t, err)

	cron := &cronRecorder{}
	require.NoError(t, cache.SchedulePrune(cron, ""))
	require.Empty(t, cron.callbacks)
}

func TestPrune(t *testing.T) {
	cache, now, tel := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "old.com", pipeline.FallbackProfile("old.com", nil)))
	now.now = now.now.Add(90 * time.Minute)
	require.NoError(t, cache.Put(ctx, "new.com", pipeline.FallbackProfile("new.com", nil)))

	cron := &cronRecorder{}
	require.NoError(t, cache.SchedulePrune(cron, ""))
	require.Equal(t, []string{DEFAULT_PRUNE_SPEC}, cron.specs)

	cron.callbacks[0]()
	require.True(t, tel.Has(telemetry.REPORT_COUNT, report_cache_prune))

	var remaining []string
	err := cache.db.Select(&remaining, "SELECT url_key FROM brand_analyses")
	require.NoError(t, err)
	require.Equal(t, []string{"new.com"}, remaining)

	removed, err := cache.Prune(ctx, now.now.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)
}

func TestCorruptEntry(t *testing.T) {
	cache, _, tel := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "acme.com", pipeline.FallbackProfile("acme.com", nil)))
	_, err := cache.db.Exec("UPDATE brand_analyses SET profile_json = 'nope'")
	require.NoError(t, err)

	_, err = cache.Get(ctx, "acme.com")
	require.ErrorIs(t, err, ErrNotFound)
	require.True(t, tel.Has(telemetry.REPORT_BROKEN, report_cache_decode))
}
