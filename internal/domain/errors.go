package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for deployment operations
var (
	// ErrArtifactNotFound is returned when no compiled artifact matches a name
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrAmbiguousArtifact is returned when a bare name matches several artifacts
	// and no selection can be made
	ErrAmbiguousArtifact = errors.New("ambiguous artifact")

	// ErrNotDeployable is returned for artifacts without creation bytecode
	ErrNotDeployable = errors.New("artifact is not deployable")

	// ErrDeploymentReverted is returned when the creation transaction reverted
	ErrDeploymentReverted = errors.New("deployment transaction reverted")

	// ErrTimeout is returned when a deployment does not complete in time
	ErrTimeout = errors.New("deployment timed out")

	// ErrInvalidRequest is returned when a deployment request is malformed
	ErrInvalidRequest = errors.New("invalid deployment request")
)

// FailureKind classifies a failed deployment
type FailureKind string

const (
	FailureNone             FailureKind = ""
	FailureArtifactNotFound FailureKind = "artifact_not_found"
	FailureProvider         FailureKind = "provider_error"
	FailureTimeout          FailureKind = "timeout"
)

// FailureKindOf returns the failure kind carried by err. Errors that are neither
// a missing artifact nor a timeout are attributed to the provider.
func FailureKindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrTimeout):
		return FailureTimeout
	case errors.Is(err, ErrArtifactNotFound):
		return FailureArtifactNotFound
	default:
		return FailureProvider
	}
}

// ArtifactNotFoundError is returned when an artifact name cannot be resolved
type ArtifactNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *ArtifactNotFoundError) Error() string {
	msg := fmt.Sprintf("artifact not found: %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *ArtifactNotFoundError) Unwrap() error {
	return ErrArtifactNotFound
}

// AmbiguousArtifactError lists the artifacts a bare name matched
type AmbiguousArtifactError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousArtifactError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "multiple artifacts named %q - use path:Name to disambiguate:", e.Name)
	for _, c := range e.Candidates {
		b.WriteString("\n  - ")
		b.WriteString(c)
	}
	return b.String()
}

func (e *AmbiguousArtifactError) Unwrap() error {
	return ErrAmbiguousArtifact
}

// ProviderError wraps any failure reported by the deployment provider
type ProviderError struct {
	Stage string
	Err   error
}

func (e *ProviderError) Error() string {
	if e.Stage == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Message returns the provider's original error message
func (e *ProviderError) Message() string {
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// TimeoutError is returned when the deadline passes before the provider answers
type TimeoutError struct {
	Stage string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("deployment timed out after %s", e.After)
	}
	return fmt.Sprintf("deployment timed out after %s while %s", e.After, strings.ToLower(e.Stage))
}

func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}
