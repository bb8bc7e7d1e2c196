// Package main provides the entry point of GoPGManager, the API of a PG/hostel manager.
// Owners set up one property, grant managers per-group view and manage capabilities,
// and every property-scoped request is authorized on the server against those grants.
// The application uses fiber for HTTP, gorm for persistence and cobra for its commands.
package main
