// Package tasks runs long catalog operations with real-time progress reporting.
//
// # Export
//
// [Exporter.Export] collects every page of a filtered listing:
//
//  1. Fetches page 1 to learn the total count (a failure here aborts the export)
//  2. Fetches pages 2..N with a worker pool behind a shared rate limiter
//  3. Reassembles shows in page order and writes them through the formatter package
//  4. Writes a manifest recording per-page results, including pages that failed
//
// The first page uses the same query the listing itself would send, so an export of an
// unfiltered listing starts from today just like the browser does.
//
// # Progress Reporting
//
// Operations accept an optional progress channel. Updates are sent with select/default so a
// slow or absent reader never blocks the export.
package tasks
