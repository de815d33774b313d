package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPractice matches every *ConfigurationError.
	ErrInvalidPractice = errors.New("invalid practice definition")

	// ErrPracticeNotFound is returned by the catalog for unknown ids.
	ErrPracticeNotFound = errors.New("practice not found")

	// ErrNotFound is returned by record backends when no row exists for a key.
	// The record store turns it into an absent record.
	ErrNotFound = errors.New("record not found")

	// ErrTransientUnavailable marks read failures the caller may retry.
	ErrTransientUnavailable = errors.New("record store temporarily unavailable")

	// ErrPersistence marks write failures. The caller keeps its form state.
	ErrPersistence = errors.New("record could not be saved")

	// ErrInvalidRecord marks a mood or journal record rejected before any write.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrRemoteService marks chat endpoint failures.
	ErrRemoteService = errors.New("remote conversational service failed")
)

// ConfigurationError reports a malformed Practice definition. It is a
// content-authoring defect, surfaced to users as "exercise not found".
type ConfigurationError struct {
	PracticeID string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("practice %q: %s", e.PracticeID, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidPractice
}

func configErr(id, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{PracticeID: id, Reason: fmt.Sprintf(format, args...)}
}
