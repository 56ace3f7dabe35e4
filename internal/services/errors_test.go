package services_test

import (
	"errors"
	"strings"
	"testing"

	"mangareel/internal/services"
)

func TestWrapTagsMarkerAndPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := services.Wrap(services.ErrDelivery, "delivery", "send", "smtp submit", cause)

	if !errors.Is(err, services.ErrDelivery) {
		t.Fatalf("expected delivery marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "delivery: send: smtp submit") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "render", "cover", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestWrapWithoutDetailUsesFallback(t *testing.T) {
	err := services.Wrap(services.ErrExternalTool, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestFatalClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil", nil, false},
		{"delivery", services.Wrap(services.ErrDelivery, "delivery", "send", "", nil), false},
		{"transient", services.Wrap(services.ErrTransient, "render", "cover", "", nil), false},
		{"render", services.Wrap(services.ErrRender, "render", "concat", "", nil), true},
		{"config", services.Wrap(services.ErrConfiguration, "catalog", "load", "", nil), true},
		{"plain", errors.New("boom"), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.Fatal(tc.err); got != tc.fatal {
				t.Fatalf("Fatal(%v) = %v, want %v", tc.err, got, tc.fatal)
			}
		})
	}
}
