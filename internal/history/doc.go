// Package history records produced runs in a local SQLite database.
package history
