package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeploymentRequest(t *testing.T) {
	t.Run("rejects empty names", func(t *testing.T) {
		for _, name := range []string{"", "   "} {
			_, err := NewDeploymentRequest(name)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		}
	})

	t.Run("args are copied in and out", func(t *testing.T) {
		args := []string{"a", "b"}
		req, err := NewDeploymentRequest(" TokenSmithy ", args...)
		require.NoError(t, err)

		args[0] = "mutated"
		got := req.ConstructorArgs()
		got[1] = "mutated"

		assert.Equal(t, "TokenSmithy", req.ArtifactName())
		assert.Equal(t, []string{"a", "b"}, req.ConstructorArgs())
		assert.Equal(t, "TokenSmithy(a, b)", req.String())
	})
}

func TestFailureKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, FailureNone},
		{"not found", &ArtifactNotFoundError{Name: "X"}, FailureArtifactNotFound},
		{"wrapped not found", fmt.Errorf("resolve: %w", &ArtifactNotFoundError{Name: "X"}), FailureArtifactNotFound},
		{"timeout", &TimeoutError{After: time.Second}, FailureTimeout},
		{"provider", &ProviderError{Stage: "deploy", Err: errors.New("boom")}, FailureProvider},
		{"ambiguous", &AmbiguousArtifactError{Name: "X"}, FailureProvider},
		{"anything else", errors.New("boom"), FailureProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FailureKindOf(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `artifact not found: "Tokn" (did you mean Token?)`,
		(&ArtifactNotFoundError{Name: "Tokn", Suggestions: []string{"Token"}}).Error())
	assert.Equal(t, "deploy: network unreachable",
		(&ProviderError{Stage: "deploy", Err: errors.New("network unreachable")}).Error())
	assert.Equal(t, "deployment timed out after 1s while confirming",
		(&TimeoutError{Stage: "Confirming", After: time.Second}).Error())
	assert.Contains(t, (&AmbiguousArtifactError{Name: "Token", Candidates: []string{"a.sol:Token", "b.sol:Token"}}).Error(), "  - b.sol:Token")
}
