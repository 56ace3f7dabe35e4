package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks malformed or unusable persisted inputs.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks ffmpeg or other subprocess failures.
	ErrExternalTool = errors.New("external tool error")
	// ErrRender marks a render pipeline failure that must prevent the ledger commit.
	ErrRender = errors.New("render failure")
	// ErrDelivery marks a transport failure sending the finished video.
	// Delivery errors are reported but never abort a run.
	ErrDelivery = errors.New("delivery failure")
	// ErrTransient marks recoverable failures such as cover or narration fetches.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether the error should abort the run. Delivery and
// transient failures degrade gracefully; everything else is fatal.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrDelivery) && !errors.Is(err, ErrTransient)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
