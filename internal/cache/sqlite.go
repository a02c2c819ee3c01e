package cache

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/runweather/running-advisor/internal/forecast"
)

// SQLiteStore persists cached forecasts in a local sqlite file using the
// pure-Go modernc.org/sqlite driver. Expiry lives entirely here, in the
// stored_at_ms column; the underlying store has no native TTL.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	log *logrus.Logger
}

// NewSQLiteStore opens (or creates) the database at path and applies the
// schema. ttl <= 0 falls back to DefaultTTL.
func NewSQLiteStore(path string, ttl time.Duration, log *logrus.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL plays nicer with the read-mostly access pattern.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Warnf("cache: could not set WAL mode: %v", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS forecast_cache (
        key TEXT PRIMARY KEY,
        payload TEXT NOT NULL,
        stored_at_ms INTEGER NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &SQLiteStore{db: db, ttl: ttl, log: log}, nil
}

// Read returns the cached dataset for key, or absent when the key is
// missing, the entry has outlived the TTL, or the stored payload does not
// unmarshal. Expired and corrupted rows are deleted on sight.
func (s *SQLiteStore) Read(key string, now time.Time) (*forecast.HourlyDataset, bool) {
	var payload string
	var storedAtMs int64

	row := s.db.QueryRow(`SELECT payload, stored_at_ms FROM forecast_cache WHERE key = ?`, key)
	if err := row.Scan(&payload, &storedAtMs); err != nil {
		if err != sql.ErrNoRows {
			s.log.Warnf("cache: read failed for %q: %v", key, err)
		}
		return nil, false
	}

	if expired(storedAtMs, now, s.ttl) {
		s.delete(key)
		return nil, false
	}

	var data forecast.HourlyDataset
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		s.log.Warnf("cache: dropping corrupted entry %q: %v", key, err)
		s.delete(key)
		return nil, false
	}
	if len(data.Time) == 0 || !data.Aligned() {
		s.log.Warnf("cache: dropping misaligned entry %q", key)
		s.delete(key)
		return nil, false
	}

	return &data, true
}

// Write stores the dataset under key with the current timestamp, replacing
// any previous entry.
func (s *SQLiteStore) Write(key string, data *forecast.HourlyDataset, now time.Time) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO forecast_cache(key, payload, stored_at_ms) VALUES(?, ?, ?)`,
		key, string(payload), now.UnixMilli(),
	)
	return err
}

// Prune deletes every entry older than the TTL.
func (s *SQLiteStore) Prune(now time.Time) int {
	cutoff := now.UnixMilli() - s.ttl.Milliseconds()
	res, err := s.db.Exec(`DELETE FROM forecast_cache WHERE stored_at_ms < ?`, cutoff)
	if err != nil {
		s.log.Warnf("cache: prune failed: %v", err)
		return 0
	}
	n, _ := res.RowsAffected()
	return int(n)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) delete(key string) {
	if _, err := s.db.Exec(`DELETE FROM forecast_cache WHERE key = ?`, key); err != nil {
		s.log.Warnf("cache: delete failed for %q: %v", key, err)
	}
}

var _ Store = (*SQLiteStore)(nil)
