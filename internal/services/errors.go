package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks bad local input rejected before any network call.
	ErrValidation = errors.New("validation error")
	// ErrUnauthenticated marks requests made without any usable credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrRenewalFailed marks an expired session whose refresh artifact was
	// rejected. Terminal: the session must be cleared and the user sent back
	// to login.
	ErrRenewalFailed = errors.New("session renewal failed")
	// ErrTransient marks network or server failures the caller may retry.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsAuthFailure reports whether the error requires a fresh login.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrRenewalFailed)
}

// IsValidation reports whether the error stems from rejected local input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsTransient reports whether the error is retryable by the caller. Auth
// failures are never transient even when the renewal call itself failed on
// the network: the session is already cleared by then.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient) && !IsAuthFailure(err)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "client failure"
	}
	return strings.Join(parts, ": ")
}
