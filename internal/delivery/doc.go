// Package delivery emails finished videos to the configured recipient.
package delivery
