// Package runner orchestrates a full production cycle: batch selection,
// video rendering, ledger commit, history recording, and delivery.
package runner
