package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/showfinder/internal/shared"
)

// CacheEntry describes one cached response without its body.
type CacheEntry struct {
	Key       string
	Size      int
	FetchedAt time.Time
	Hits      int
}

// CacheRepository stores raw catalog responses in the response_cache table.
type CacheRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCacheRepository creates a new CacheRepository with the given database connection
func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{db: db, now: time.Now}
}

// Get returns the body stored under key. Entries older than maxAge are reported as
// [shared.ErrCacheMiss]; a non-positive maxAge accepts any age. Hits are counted.
func (r *CacheRepository) Get(key string, maxAge time.Duration) ([]byte, error) {
	query := `
		SELECT body, fetched_at
		FROM response_cache
		WHERE cache_key = ?
	`

	var body []byte
	var fetchedAt time.Time
	if err := r.db.QueryRow(query, key).Scan(&body, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if maxAge > 0 && r.now().Sub(fetchedAt) > maxAge {
		return nil, shared.ErrCacheMiss
	}

	if _, err := r.db.Exec(`UPDATE response_cache SET hits = hits + 1 WHERE cache_key = ?`, key); err != nil {
		return nil, fmt.Errorf("failed to record cache hit: %w", err)
	}

	return body, nil
}

// Put stores body under key, replacing any previous entry and resetting its age.
func (r *CacheRepository) Put(key string, body []byte) error {
	query := `
		INSERT INTO response_cache (cache_key, body, fetched_at, hits)
		VALUES (?, ?, ?, 0)
		ON CONFLICT(cache_key) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at
	`

	if _, err := r.db.Exec(query, key, body, r.timestamp(r.now())); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// List returns every entry, most recently fetched first.
func (r *CacheRepository) List() ([]CacheEntry, error) {
	query := `
		SELECT cache_key, length(body), fetched_at, hits
		FROM response_cache
		ORDER BY fetched_at DESC, cache_key
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []CacheEntry
	for rows.Next() {
		var e CacheEntry
		if err := rows.Scan(&e.Key, &e.Size, &e.FetchedAt, &e.Hits); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache entries: %w", err)
	}
	return entries, nil
}

// Purge deletes entries fetched more than olderThan ago, or every entry when olderThan is
// not positive. It returns the number of rows removed.
func (r *CacheRepository) Purge(olderThan time.Duration) (int64, error) {
	var result sql.Result
	var err error
	if olderThan > 0 {
		result, err = r.db.Exec(`DELETE FROM response_cache WHERE fetched_at < ?`, r.timestamp(r.now().Add(-olderThan)))
	} else {
		result, err = r.db.Exec(`DELETE FROM response_cache`)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged entries: %w", err)
	}
	return n, nil
}

// timestamp normalizes t to whole UTC seconds so stored values compare correctly as text.
func (r *CacheRepository) timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
