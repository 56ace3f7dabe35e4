// Package config loads, normalizes, and validates mangareel configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and overlays credentials from the environment
// (SERPAPI_KEY, SMTP_USERNAME, SMTP_PASSWORD, MAIL_FROM, MAIL_TO). The Config
// type centralizes every knob the CLI needs so the catalog, ledger, render,
// and delivery code all see sanitized paths and validated settings.
package config
