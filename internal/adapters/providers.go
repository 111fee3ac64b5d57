package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/smithy/internal/adapters/abi"
	"github.com/trebuchet-org/smithy/internal/adapters/artifacts"
	"github.com/trebuchet-org/smithy/internal/adapters/compiler"
	"github.com/trebuchet-org/smithy/internal/adapters/evm"
	"github.com/trebuchet-org/smithy/internal/adapters/interactive"
	"github.com/trebuchet-org/smithy/internal/adapters/progress"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

// ArtifactSet provides compilation and artifact lookup
var ArtifactSet = wire.NewSet(
	compiler.NewBuilder,
	wire.Bind(new(usecase.ArtifactBuilder), new(*compiler.Builder)),

	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ArtifactSelector), new(*interactive.SelectorAdapter)),
)

// ChainSet provides the go-ethereum deployment provider
var ChainSet = wire.NewSet(
	abi.NewEncoder,
	evm.NewProvider,
	wire.Bind(new(usecase.DeploymentProvider), new(*evm.Provider)),
)

// ProgressSet provides progress reporting
var ProgressSet = wire.NewSet(
	progress.ProvideProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ArtifactSet,
	InteractiveSet,
	ChainSet,
	ProgressSet,
)
