package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/smithy/internal/app"
	"github.com/trebuchet-org/smithy/internal/cli/render"
	"github.com/trebuchet-org/smithy/internal/domain"
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/domain/models"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

type stubProvider struct {
	address   string
	deployErr error
	known     []string
	deployed  []string
	args      [][]string
}

func (p *stubProvider) ResolveArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	for _, k := range p.known {
		if k == name {
			return &models.Artifact{Name: name, Bytecode: "0x6000"}, nil
		}
	}
	return nil, &domain.ArtifactNotFoundError{Name: name}
}

func (p *stubProvider) Deploy(ctx context.Context, artifact *models.Artifact, args []string) (*usecase.PendingDeployment, error) {
	p.deployed = append(p.deployed, artifact.Name)
	p.args = append(p.args, args)
	if p.deployErr != nil {
		return nil, p.deployErr
	}
	return &usecase.PendingDeployment{Artifact: artifact, Address: p.address, TransactionHash: "0x01"}, nil
}

func (p *stubProvider) AwaitConfirmation(ctx context.Context, pending *usecase.PendingDeployment) (*domain.DeploymentResult, error) {
	return &domain.DeploymentResult{
		Artifact:        pending.Artifact.Name,
		Address:         pending.Address,
		TransactionHash: pending.TransactionHash,
	}, nil
}

type stubRepository struct {
	artifacts []*models.Artifact
}

func (r *stubRepository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	return nil, &domain.ArtifactNotFoundError{Name: name}
}

func (r *stubRepository) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	return r.artifacts, nil
}

// withStubApp replaces app construction for the duration of a test
func withStubApp(t *testing.T, provider *stubProvider, repo *stubRepository) *config.RuntimeConfig {
	t.Helper()
	color.NoColor = true

	captured := &config.RuntimeConfig{}
	original := initApp
	initApp = func(v *viper.Viper, out io.Writer) (*app.App, error) {
		*captured = config.RuntimeConfig{
			Artifact:       v.GetString("artifact"),
			Output:         v.GetString("output"),
			Timeout:        v.GetDuration("timeout"),
			NonInteractive: v.GetBool("non_interactive"),
			Build:          v.GetBool("build") && !v.GetBool("no_build"),
		}
		cfg := captured
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		deploy := usecase.NewDeployContract(cfg, provider, render.NewDeploymentRenderer(out, cfg), usecase.NopProgress{}, log)
		return app.NewApp(cfg, deploy, usecase.NewListArtifacts(repo), nil), nil
	}
	t.Cleanup(func() { initApp = original })
	return captured
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := ExecuteContext(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRoot_DeploysDefaultArtifact(t *testing.T) {
	provider := &stubProvider{address: "0xABC", known: []string{"TokenSmithy"}}
	cfg := withStubApp(t, provider, &stubRepository{})

	code, stdout, stderr := run()

	assert.Equal(t, 0, code)
	assert.Equal(t, "TokenSmithy deployed to: 0xABC\n", stdout)
	assert.Empty(t, stderr)
	assert.Equal(t, []string{"TokenSmithy"}, provider.deployed)
	assert.Equal(t, "TokenSmithy", cfg.Artifact)
	assert.Equal(t, config.OutputText, cfg.Output)
}

func TestRoot_ProviderFailureExitsOne(t *testing.T) {
	provider := &stubProvider{known: []string{"TokenSmithy"}, deployErr: errors.New("network unreachable")}
	withStubApp(t, provider, &stubRepository{})

	code, stdout, stderr := run()

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "network unreachable")
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	withStubApp(t, &stubProvider{}, &stubRepository{})

	code, _, stderr := run("TokenSmithy")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "❌ unknown command")
}

func TestDeployCmd(t *testing.T) {
	t.Run("passes constructor args through", func(t *testing.T) {
		provider := &stubProvider{address: "0xDEF", known: []string{"Token"}}
		withStubApp(t, provider, &stubRepository{})

		code, stdout, _ := run("deploy", "Token", "Smithy", "1000")

		assert.Equal(t, 0, code)
		assert.Equal(t, "Token deployed to: 0xDEF\n", stdout)
		require.Len(t, provider.args, 1)
		assert.Equal(t, []string{"Smithy", "1000"}, provider.args[0])
	})

	t.Run("unknown artifact never deploys", func(t *testing.T) {
		provider := &stubProvider{address: "0xDEF", known: []string{"Token"}}
		withStubApp(t, provider, &stubRepository{})

		code, _, stderr := run("deploy", "Nope")

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, `❌ artifact not found: "Nope"`)
		assert.Empty(t, provider.deployed)
	})

	t.Run("requires an artifact", func(t *testing.T) {
		withStubApp(t, &stubProvider{}, &stubRepository{})

		code, _, _ := run("deploy")
		assert.Equal(t, 1, code)
	})

	t.Run("json output", func(t *testing.T) {
		provider := &stubProvider{address: "0xABC", known: []string{"TokenSmithy"}}
		cfg := withStubApp(t, provider, &stubRepository{})

		code, stdout, _ := run("deploy", "TokenSmithy", "-o", "json", "--no-build", "--timeout", "30s")

		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, `"address": "0xABC"`)
		assert.Equal(t, config.OutputJSON, cfg.Output)
		assert.False(t, cfg.Build)
		assert.Equal(t, "30s", cfg.Timeout.String())
	})
}

func TestArtifactsCmd(t *testing.T) {
	repo := &stubRepository{artifacts: []*models.Artifact{
		{Name: "TokenSmithy", SourcePath: "contracts/TokenSmithy.sol", Format: models.HardhatArtifact, Bytecode: "0x6000"},
		{Name: "IToken", SourcePath: "contracts/IToken.sol", Format: models.HardhatArtifact, Bytecode: "0x"},
	}}
	withStubApp(t, &stubProvider{}, repo)

	code, stdout, _ := run("artifacts", "--deployable")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "TokenSmithy")
	assert.NotContains(t, stdout, "IToken")
}

func TestVersionCmd(t *testing.T) {
	original := initApp
	initApp = func(v *viper.Viper, out io.Writer) (*app.App, error) {
		t.Fatal("version must not build the app")
		return nil, nil
	}
	t.Cleanup(func() { initApp = original })

	code, stdout, _ := run("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "smithy version dev\n", stdout)
}
