// Package models defines the domain entities and form types for the playlist client.
//
// The package contains two categories of types:
//
// 1. Domain entities: canonical representations of backend data
//   - [Playlist] : Playlist metadata managed through the backend
//   - [Track] : Canonical song shape; both backend wire shapes (the persisted
//     track and the search result) are mapped onto it at the API boundary
//   - [User] : The authenticated account returned by login
//
// 2. Form types: stateless input carriers with local validation
//   - [Credentials] : Login form (email, password)
//   - [Registration] : Register form (name, email, password)
//   - [PlaylistForm] : Create/edit playlist dialog (name, description)
//
// Form validation is synchronous and field-scoped: Validate returns a
// [FieldErrors] map keyed by field name, and submission is expected to be
// blocked while the map is non-empty. Validation failures never reach the
// network.
package models
