package cache

import (
	"strconv"
	"strings"
	"time"

	"github.com/runweather/running-advisor/internal/forecast"
)

// DefaultTTL is how long a cached forecast stays valid.
const DefaultTTL = time.Hour

// Store is the persistent key/value surface for fetched forecasts. Reads
// fail soft: expired or corrupted entries are treated as absent, never
// surfaced as errors. Writes are best-effort; the caller logs and moves on.
type Store interface {
	Read(key string, now time.Time) (*forecast.HourlyDataset, bool)
	Write(key string, data *forecast.HourlyDataset, now time.Time) error

	// Prune removes expired entries and returns how many were dropped.
	Prune(now time.Time) int

	Close() error
}

// Key derives the deterministic cache key for a raw location string and a
// forecast duration in days. The location is lower-cased and stripped to
// [a-z0-9], so raw inputs that differ only in punctuation or case collide
// on purpose: they denote the same query.
func Key(location string, days int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(location) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String() + "_" + strconv.Itoa(days) + "d"
}

func expired(storedAtMs int64, now time.Time, ttl time.Duration) bool {
	age := now.UnixMilli() - storedAtMs
	return age > ttl.Milliseconds()
}
