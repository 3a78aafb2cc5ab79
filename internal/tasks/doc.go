// Package tasks orchestrates long-running playlist operations with real-time progress reporting.
//
// # Bulk Export
//
// [ExportEngine.BulkExport] exports several playlists to disk concurrently:
//   - Fetches each playlist's tracks from the backend, rate limited
//   - A worker pool renders the chosen format (json, csv, markdown, txt)
//   - Partial failures are collected per playlist rather than aborting
//   - A manifest file summarizing the run is written last
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters and messages for
// display. Updates use select with default to prevent blocking.
package tasks
