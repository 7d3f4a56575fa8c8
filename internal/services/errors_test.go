package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarkerAndDetail(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrTransient, "gateway", "call", "POST /learning/submit", cause)

	if !errors.Is(err, ErrTransient) {
		t.Fatal("marker lost")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause lost")
	}
	if !strings.Contains(err.Error(), "gateway: call: POST /learning/submit") {
		t.Fatalf("detail missing: %q", err)
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "importer", "poll", "", nil)
	if !IsTransient(err) {
		t.Fatalf("expected transient classification, got %q", err)
	}
}

func TestClassificationHelpers(t *testing.T) {
	if !IsAuthFailure(Wrap(ErrRenewalFailed, "gateway", "renew", "", nil)) {
		t.Fatal("renewal failure not classified as auth failure")
	}
	if !IsAuthFailure(Wrap(ErrUnauthenticated, "gateway", "call", "", nil)) {
		t.Fatal("unauthenticated not classified as auth failure")
	}
	if !IsValidation(Wrap(ErrValidation, "importer", "submit", "not a txt file", nil)) {
		t.Fatal("validation marker not classified")
	}
	if IsValidation(Wrap(ErrTransient, "review", "submit", "", nil)) {
		t.Fatal("transient misclassified as validation")
	}

	renewal := Wrap(ErrRenewalFailed, "gateway", "renew", "",
		Wrap(ErrTransient, "gateway", "call", "POST /auth/refresh returned 502", nil))
	if IsTransient(renewal) {
		t.Fatal("renewal failure must not be classified retryable")
	}
}
