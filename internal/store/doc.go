// Package store provides local persistence for the playlist client.
//
// Two concerns live here, both backed by the same SQLite database:
//
//   - [Store] : a key/value table holding the persisted credential strings.
//     The keys are exactly the three the client depends on: "token" (the
//     session token), "refreshToken" and "code". Raw strings with no
//     namespacing, versioning, expiry or encryption. Writes are synchronous
//     write-through; concurrent writers are last-writer-wins.
//
//   - [PlaylistCache] : the last fetched playlist collection, replaced
//     wholesale after each successful fetch. The cache exists so CLI
//     commands can render something while offline; it is never consulted
//     to skip a fetch.
//
// Schema management uses embedded SQL migrations (sql/*.sql) applied through
// [RunMigrations].
package store
