package app

import (
	"github.com/trebuchet-org/smithy/internal/adapters/evm"
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	Config *config.RuntimeConfig

	// Use cases
	DeployContract *usecase.DeployContract
	ListArtifacts  *usecase.ListArtifacts

	// Provider holds the RPC connection released by Close
	Provider *evm.Provider
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployContract *usecase.DeployContract,
	listArtifacts *usecase.ListArtifacts,
	provider *evm.Provider,
) *App {
	return &App{
		Config:         cfg,
		DeployContract: deployContract,
		ListArtifacts:  listArtifacts,
		Provider:       provider,
	}
}

// Close releases resources held by the app
func (a *App) Close() error {
	if a.Provider == nil {
		return nil
	}
	return a.Provider.Close()
}
