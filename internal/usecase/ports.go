package usecase

import (
	"context"

	"github.com/trebuchet-org/smithy/internal/domain"
	"github.com/trebuchet-org/smithy/internal/domain/models"
)

// DeploymentProvider resolves, broadcasts and confirms deployments.
// The runner never talks to a chain directly.
type DeploymentProvider interface {
	ResolveArtifact(ctx context.Context, name string) (*models.Artifact, error)
	Deploy(ctx context.Context, artifact *models.Artifact, args []string) (*PendingDeployment, error)
	AwaitConfirmation(ctx context.Context, pending *PendingDeployment) (*domain.DeploymentResult, error)
}

// PendingDeployment is the handle for a broadcast but unconfirmed deployment
type PendingDeployment struct {
	Artifact        *models.Artifact
	Address         string // expected contract address
	TransactionHash string
	Deployer        string
	// Tx is the provider specific transaction handle
	Tx any
}

// ArtifactRepository provides access to compiled artifacts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
	ListArtifacts(ctx context.Context) ([]*models.Artifact, error)
}

// ArtifactBuilder compiles the project so its artifacts are current
type ArtifactBuilder interface {
	Build(ctx context.Context) error
}

// ArtifactSelector handles interactive selection of artifacts
type ArtifactSelector interface {
	SelectArtifact(ctx context.Context, artifacts []*models.Artifact, prompt string) (*models.Artifact, error)
}

// ResultSink receives the result of a successful deployment
type ResultSink interface {
	WriteResult(ctx context.Context, result *domain.DeploymentResult) error
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    ExecutionStage
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage in the deployment process
type ExecutionStage string

const (
	StageResolving  ExecutionStage = "Resolving"
	StageDeploying  ExecutionStage = "Deploying"
	StageConfirming ExecutionStage = "Confirming"
	StageCompleted  ExecutionStage = "Completed"
	StageFailed     ExecutionStage = "Failed"
)
