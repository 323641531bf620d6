// Package models defines the read-only entities the client receives from the upstream show catalog.
//
//   - [Show] : a concert with one headliner, zero or more openers, and a venue
//   - [ShowsPage] : one page of a filtered listing ({page, limit, totalCount, shows})
//   - [VenueDetail] : a venue with its upcoming shows
//   - [Genre], [Blurb], [Festival] : reference data for filters, the home banner, and festival guides
//   - [ClickEvent] : the analytics beacon body
//
// Entities are replaced wholesale on every successful fetch; nothing here is patched in place.
package models
