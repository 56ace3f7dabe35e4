// Package services defines shared utilities consumed by the run pipeline and
// external integrations.
//
// Structured error markers plus the Wrap helper classify failures: render and
// configuration errors abort the run before the ledger commit, while delivery
// and per-slide transient failures degrade gracefully. Subpackages hold the
// HTTP clients for narration (tts) and cover lookup (imagesearch).
package services
