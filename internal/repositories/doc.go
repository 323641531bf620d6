// Package repositories implements SQLite persistence.
//
// The only table the client keeps is the response cache: raw catalog responses for reference
// data (venues, genres) keyed by request path, with the time they were fetched and a hit
// counter. [CacheRepository] satisfies services.ResponseCache.
package repositories
