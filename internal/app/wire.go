//go:build wireinject
// +build wireinject

package app

import (
	"io"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/smithy/internal/adapters"
	"github.com/trebuchet-org/smithy/internal/cli/render"
	"github.com/trebuchet-org/smithy/internal/config"
	"github.com/trebuchet-org/smithy/internal/logging"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, out io.Writer) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		adapters.AllAdapters,

		render.NewDeploymentRenderer,
		wire.Bind(new(usecase.ResultSink), new(*render.DeploymentRenderer)),

		usecase.NewDeployContract,
		usecase.NewListArtifacts,

		NewApp,
	)
	return nil, nil
}
