// Package brandcache stores analyzed brand profiles keyed by website.
package brandcache

import (
	"context"
	"database/sql"
	"diya-backend/internal/components/assert"
	"diya-backend/internal/components/chrono"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/pipeline"
	"diya-backend/internal/scrapers/site"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	report_cache_prune  = "cache.prune"
	report_cache_decode = "cache.decode"
)

const DEFAULT_PRUNE_SPEC = "@hourly"

var ErrNotFound = errors.New("brand analysis not cached")

type row struct {
	URLKey      string `db:"url_key"`
	ProfileJSON string `db:"profile_json"`
	CreatedAt   int64  `db:"created_at"`
}

// Cache is a sqlite backed store of profiles, entries older than the ttl are treated as missing.
// A ttl <= 0 disables expiry.
type Cache struct {
	db   *sqlx.DB
	time chrono.API
	ttl  time.Duration
	tel  telemetry.API
}

func NewCache(conn *sqlx.DB, time chrono.API, ttl time.Duration, tel telemetry.API) *Cache {
	assert.NotNil(conn)
	assert.NotNil(time)
	assert.NotNil(tel)

	return &Cache{
		db:   conn,
		time: time,
		ttl:  ttl,
		tel:  telemetry.NewScopedAPI("brandcache", tel),
	}
}

// NormalizeKey maps equivalent website urls onto the same key,
// ex. "https://WWW.Acme.com/about/" -> "acme.com/about".
func NormalizeKey(link string) string {
	parsed, err := url.Parse(site.NormalizeURL(link))
	if err != nil || parsed.Host == "" {
		return strings.ToLower(strings.TrimSpace(link))
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	path := strings.TrimRight(parsed.Path, "/")
	return host + path
}

func (c *Cache) Put(ctx context.Context, link string, profile pipeline.Profile) error {
	serialized, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("serializing profile: %w", err)
	}
	_, err = c.db.NamedExecContext(
		ctx,
		`INSERT INTO brand_analyses (url_key, profile_json, created_at)
		VALUES (:url_key, :profile_json, :created_at)
		ON CONFLICT (url_key) DO UPDATE SET
			profile_json = excluded.profile_json,
			created_at = excluded.created_at`,
		row{
			URLKey:      NormalizeKey(link),
			ProfileJSON: string(serialized),
			CreatedAt:   c.time.Now().Unix(),
		},
	)
	if err != nil {
		return fmt.Errorf("caching profile: %w", err)
	}
	return nil
}

// Get returns the cached profile for `link`, ErrNotFound when it is missing or expired.
func (c *Cache) Get(ctx context.Context, link string) (pipeline.Profile, error) {
	var cached row
	err := c.db.GetContext(
		ctx,
		&cached,
		"SELECT url_key, profile_json, created_at FROM brand_analyses WHERE url_key = ?",
		NormalizeKey(link),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return pipeline.Profile{}, ErrNotFound
	}
	if err != nil {
		return pipeline.Profile{}, fmt.Errorf("reading cached profile: %w", err)
	}

	if c.ttl > 0 && c.time.Now().Sub(time.Unix(cached.CreatedAt, 0)) > c.ttl {
		return pipeline.Profile{}, ErrNotFound
	}

	var profile pipeline.Profile
	err = json.Unmarshal([]byte(cached.ProfileJSON), &profile)
	if err != nil {
		c.tel.ReportBroken(report_cache_decode, err, cached.URLKey)
		return pipeline.Profile{}, ErrNotFound
	}
	return profile, nil
}

// Prune deletes every entry created before `before` and returns how many were removed.
func (c *Cache) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := c.db.ExecContext(
		ctx,
		"DELETE FROM brand_analyses WHERE created_at < ?",
		before.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

// SchedulePrune removes expired entries on the given cron spec, empty means DEFAULT_PRUNE_SPEC.
func (c *Cache) SchedulePrune(cron chrono.CronAPI, spec string) error {
	if c.ttl <= 0 {
		return nil
	}
	if spec == "" {
		spec = DEFAULT_PRUNE_SPEC
	}
	return cron.Cron(spec, func() {
		removed, err := c.Prune(context.Background(), c.time.Now().Add(-c.ttl))
		if err != nil {
			c.tel.ReportBroken(report_cache_prune, err)
			return
		}
		c.tel.ReportCount(report_cache_prune, removed)
	})
}
