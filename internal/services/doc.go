// Package services talks to the upstream show catalog over HTTP.
//
// # Catalog
//
// [Catalog] is the read interface consumed by the listing controllers, the CLI and the web frontend.
// [CatalogClient] implements it against the REST API whose base URL comes from configuration.
//
// Reference data that rarely changes (venues, genres) can be served from a [ResponseCache],
// typically the sqlite-backed repositories.CacheRepository.
//
// # Error Handling
//
// Failures are classified before they reach a controller:
//   - [shared.ErrMissingConfig] : no base URL configured, no request is attempted
//   - [shared.ErrInvalidShowID] / [shared.ErrInvalidVenueID] : malformed route parameter, no request is attempted
//   - [APIError] : non-2xx response, carrying the message from the body when one could be decoded
//   - transport errors are wrapped with [shared.ErrAPIRequest]
//
// # Analytics
//
// [Tracker] posts click beacons to /analytics/track-click on a background goroutine.
// Beacons are throttled with a token bucket and every failure is logged and dropped.
//
// # Raw Requests
//
// [APIService] performs unparsed GET/POST requests for the `api` debugging commands and for the tracker.
package services
