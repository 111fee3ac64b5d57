package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/trebuchet-org/smithy/internal/domain"
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// DeploymentRenderer writes the result of a successful deployment
type DeploymentRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentRenderer creates a renderer in the configured output format
func NewDeploymentRenderer(out io.Writer, cfg *config.RuntimeConfig) *DeploymentRenderer {
	format := cfg.Output
	if format == "" {
		format = config.OutputText
	}
	return &DeploymentRenderer{out: out, format: format}
}

// WriteResult implements usecase.ResultSink
func (r *DeploymentRenderer) WriteResult(ctx context.Context, result *domain.DeploymentResult) error {
	return r.Render(result)
}

// Render prints the deployment. Text output is exactly one line.
func (r *DeploymentRenderer) Render(result *domain.DeploymentResult) error {
	switch r.format {
	case config.OutputJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case config.OutputYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintf(r.out, "%s deployed to: %s\n", result.Artifact, result.Address)
		return err
	}
}

var (
	_ usecase.ResultSink                  = (*DeploymentRenderer)(nil)
	_ Renderer[*domain.DeploymentResult] = (*DeploymentRenderer)(nil)
)
