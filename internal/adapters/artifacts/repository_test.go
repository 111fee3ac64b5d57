package artifacts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/smithy/internal/domain"
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/domain/models"
)

const hardhatTokenSmithy = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "TokenSmithy",
  "sourceName": "contracts/TokenSmithy.sol",
  "abi": [{"type": "constructor", "inputs": [], "stateMutability": "nonpayable"}],
  "bytecode": "0x6001600c60003960016000f300",
  "deployedBytecode": "0x00",
  "linkReferences": {},
  "deployedLinkReferences": {}
}`

const foundryCounter = `{
  "abi": [],
  "bytecode": {"object": "0x6001600c60003960016000f300", "sourceMap": "", "linkReferences": {}},
  "deployedBytecode": {"object": "0x00", "sourceMap": "", "linkReferences": {}},
  "metadata": {
    "compiler": {"version": "0.8.24+commit.e11b9ed9"},
    "settings": {"compilationTarget": {"src/Counter.sol": "Counter"}}
  }
}`

const foundryInterface = `{
  "abi": [],
  "bytecode": {"object": "0x", "sourceMap": "", "linkReferences": {}},
  "metadata": {"settings": {"compilationTarget": {"src/ICounter.sol": "ICounter"}}}
}`

func foundryArtifactFor(source, name string) string {
	return `{"abi": [], "bytecode": {"object": "0x60", "linkReferences": {}},
  "metadata": {"settings": {"compilationTarget": {"` + source + `": "` + name + `"}}}}`
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestRepository(t *testing.T, root string, builder *stubBuilder, selector *stubSelector, build bool) *Repository {
	t.Helper()
	cfg := &config.RuntimeConfig{
		ProjectRoot:  root,
		ArtifactDirs: []string{"out", "artifacts"},
		Build:        build,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRepository(cfg, nil, nil, log)
	if builder != nil {
		r.builder = builder
	}
	if selector != nil {
		r.selector = selector
	}
	return r
}

type stubBuilder struct {
	calls int
	err   error
}

func (b *stubBuilder) Build(ctx context.Context) error {
	b.calls++
	return b.err
}

type stubSelector struct {
	pick int
	err  error
	seen []*models.Artifact
}

func (s *stubSelector) SelectArtifact(ctx context.Context, artifacts []*models.Artifact, prompt string) (*models.Artifact, error) {
	s.seen = artifacts
	if s.err != nil {
		return nil, s.err
	}
	return artifacts[s.pick], nil
}

func TestRepository_GetArtifact(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	write(t, filepath.Join(root, "artifacts/contracts/TokenSmithy.sol/TokenSmithy.json"), hardhatTokenSmithy)
	write(t, filepath.Join(root, "artifacts/contracts/TokenSmithy.sol/TokenSmithy.dbg.json"), `{"_format": "hh-sol-dbg-1", "buildInfo": "../../build-info/x.json"}`)
	write(t, filepath.Join(root, "artifacts/build-info/x.json"), `{"abi": [], "bytecode": {"object": "0x60"}}`)
	write(t, filepath.Join(root, "out/Counter.sol/Counter.json"), foundryCounter)
	write(t, filepath.Join(root, "out/ICounter.sol/ICounter.json"), foundryInterface)

	t.Run("hardhat artifact by name", func(t *testing.T) {
		r := newTestRepository(t, root, nil, nil, false)

		a, err := r.GetArtifact(ctx, "TokenSmithy")
		require.NoError(t, err)
		assert.Equal(t, models.HardhatArtifact, a.Format)
		assert.Equal(t, "contracts/TokenSmithy.sol", a.SourcePath)
		assert.Equal(t, filepath.Join("artifacts", "contracts", "TokenSmithy.sol", "TokenSmithy.json"), a.ArtifactPath)
		assert.True(t, a.Deployable())
	})

	t.Run("foundry artifact by fully qualified name", func(t *testing.T) {
		r := newTestRepository(t, root, nil, nil, false)

		a, err := r.GetArtifact(ctx, "src/Counter.sol:Counter")
		require.NoError(t, err)
		assert.Equal(t, models.FoundryArtifact, a.Format)
		assert.Equal(t, "0.8.24+commit.e11b9ed9", a.CompilerVersion)
	})

	t.Run("interfaces are indexed but not deployable", func(t *testing.T) {
		r := newTestRepository(t, root, nil, nil, false)

		a, err := r.GetArtifact(ctx, "ICounter")
		require.NoError(t, err)
		assert.False(t, a.Deployable())
	})

	t.Run("unknown name suggests close matches", func(t *testing.T) {
		r := newTestRepository(t, root, nil, nil, false)

		_, err := r.GetArtifact(ctx, "TokenSmity")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

		var notFound *domain.ArtifactNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, []string{"TokenSmithy"}, notFound.Suggestions)
	})

	t.Run("list skips debug and build-info files", func(t *testing.T) {
		r := newTestRepository(t, root, nil, nil, false)

		all, err := r.ListArtifacts(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestRepository_Ambiguous(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	write(t, filepath.Join(root, "out/A.sol/Token.json"), foundryArtifactFor("src/A.sol", "Token"))
	write(t, filepath.Join(root, "out/B.sol/Token.json"), foundryArtifactFor("src/B.sol", "Token"))

	t.Run("selector picks among candidates sorted by path", func(t *testing.T) {
		selector := &stubSelector{pick: 1}
		r := newTestRepository(t, root, nil, selector, false)

		a, err := r.GetArtifact(ctx, "Token")
		require.NoError(t, err)
		assert.Equal(t, "src/B.sol", a.SourcePath)
		require.Len(t, selector.seen, 2)
		assert.Equal(t, "src/A.sol", selector.seen[0].SourcePath)
	})

	t.Run("no selection yields an ambiguity error", func(t *testing.T) {
		selector := &stubSelector{err: errors.New("non-interactive")}
		r := newTestRepository(t, root, nil, selector, false)

		_, err := r.GetArtifact(ctx, "Token")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAmbiguousArtifact)
		assert.Equal(t, domain.FailureProvider, domain.FailureKindOf(err))

		var ambiguous *domain.AmbiguousArtifactError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, []string{"src/A.sol:Token", "src/B.sol:Token"}, ambiguous.Candidates)
	})
}

func TestRepository_Build(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	write(t, filepath.Join(root, "out/Counter.sol/Counter.json"), foundryCounter)

	t.Run("builds once before indexing", func(t *testing.T) {
		builder := &stubBuilder{}
		r := newTestRepository(t, root, builder, nil, true)

		_, err := r.GetArtifact(ctx, "Counter")
		require.NoError(t, err)
		_, err = r.GetArtifact(ctx, "Counter")
		require.NoError(t, err)
		assert.Equal(t, 1, builder.calls)
	})

	t.Run("build failure is returned", func(t *testing.T) {
		builder := &stubBuilder{err: errors.New("solc exploded")}
		r := newTestRepository(t, root, builder, nil, true)

		_, err := r.GetArtifact(ctx, "Counter")
		assert.ErrorContains(t, err, "solc exploded")
		assert.NotErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("build disabled skips the builder", func(t *testing.T) {
		builder := &stubBuilder{}
		r := newTestRepository(t, root, builder, nil, false)

		_, err := r.GetArtifact(ctx, "Counter")
		require.NoError(t, err)
		assert.Zero(t, builder.calls)
	})
}
