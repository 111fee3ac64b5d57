package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/trebuchet-org/smithy/internal/domain"
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/domain/models"
)

// DeploymentOutcome is reported to the progress sink when a run finishes
type DeploymentOutcome struct {
	Request domain.DeploymentRequest
	State   domain.DeploymentState
	Result  *domain.DeploymentResult
	Err     error
}

// DeployContract resolves one artifact, deploys it through the provider and
// waits for confirmation. It never retries.
type DeployContract struct {
	provider DeploymentProvider
	sink     ResultSink
	progress ProgressSink
	timeout  time.Duration
	log      *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	provider DeploymentProvider,
	sink ResultSink,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	if progress == nil {
		progress = NopProgress{}
	}
	return &DeployContract{
		provider: provider,
		sink:     sink,
		progress: progress,
		timeout:  cfg.Timeout,
		log:      log.With("component", "DeployContract"),
	}
}

// Run executes a single deployment request
func (uc *DeployContract) Run(ctx context.Context, req domain.DeploymentRequest) (*domain.DeploymentResult, error) {
	outcome := &DeploymentOutcome{Request: req, State: domain.DeploymentPending}

	result, err := uc.run(ctx, req)
	if err != nil {
		outcome.State = domain.DeploymentFailed
		outcome.Err = err
		uc.log.Debug("deployment failed", "artifact", req.ArtifactName(), "kind", domain.FailureKindOf(err), "error", err)
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: err.Error(), Metadata: outcome})
		return nil, err
	}

	outcome.State = domain.DeploymentSucceeded
	outcome.Result = result
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted, Message: result.Address, Metadata: outcome})

	if uc.sink != nil {
		if err := uc.sink.WriteResult(ctx, result); err != nil {
			return result, fmt.Errorf("failed to write deployment result: %w", err)
		}
	}
	return result, nil
}

func (uc *DeployContract) run(ctx context.Context, req domain.DeploymentRequest) (*domain.DeploymentResult, error) {
	if req.ArtifactName() == "" {
		return nil, &domain.ArtifactNotFoundError{}
	}

	// Resolving may compile the project and wait on an interactive choice,
	// so only the caller's context bounds it
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageResolving, Message: "Resolving " + req.ArtifactName(), Spinner: true})
	artifact, err := await(ctx, uc.timeout, StageResolving, func(ctx context.Context) (*models.Artifact, error) {
		return uc.provider.ResolveArtifact(ctx, req.ArtifactName())
	})
	if err != nil {
		return nil, classify(StageResolving, err)
	}
	uc.log.Debug("resolved artifact", "name", artifact.Name, "path", artifact.FullyQualifiedName())

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageDeploying, Message: "Deploying " + artifact.Name, Spinner: true})
	pending, err := await(ctx, uc.timeout, StageDeploying, func(ctx context.Context) (*PendingDeployment, error) {
		return uc.provider.Deploy(ctx, artifact, req.ConstructorArgs())
	})
	if err != nil {
		return nil, classify(StageDeploying, err)
	}
	uc.log.Debug("deployment broadcast", "tx", pending.TransactionHash, "address", pending.Address)

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageConfirming, Message: "Waiting for " + pending.TransactionHash, Spinner: true, Metadata: pending})
	confirmed, err := await(ctx, uc.timeout, StageConfirming, func(ctx context.Context) (*domain.DeploymentResult, error) {
		return uc.provider.AwaitConfirmation(ctx, pending)
	})
	if err != nil {
		return nil, classify(StageConfirming, err)
	}

	// The provider's value is left untouched
	result := *confirmed
	if result.Artifact == "" {
		result.Artifact = artifact.Name
	}
	return &result, nil
}

// await runs fn and returns as soon as it finishes or ctx is done, whichever
// comes first. A provider that ignores cancellation is left to finish on its own.
func await[T any](ctx context.Context, timeout time.Duration, stage ExecutionStage, fn func(context.Context) (T, error)) (T, error) {
	type answer struct {
		value T
		err   error
	}

	done := make(chan answer, 1)
	go func() {
		v, err := fn(ctx)
		done <- answer{value: v, err: err}
	}()

	var zero T
	select {
	case a := <-done:
		if a.err != nil && errors.Is(a.err, context.DeadlineExceeded) && ctx.Err() != nil {
			return zero, &domain.TimeoutError{Stage: string(stage), After: timeout}
		}
		return a.value, a.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, &domain.TimeoutError{Stage: string(stage), After: timeout}
		}
		return zero, ctx.Err()
	}
}

// classify maps an error to the deployment failure taxonomy
func classify(stage ExecutionStage, err error) error {
	var providerErr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, domain.ErrArtifactNotFound):
		return err
	case errors.As(err, &providerErr):
		return err
	default:
		return &domain.ProviderError{Stage: stageName(stage), Err: err}
	}
}

func stageName(stage ExecutionStage) string {
	switch stage {
	case StageResolving:
		return "resolve"
	case StageDeploying:
		return "deploy"
	case StageConfirming:
		return "confirm"
	default:
		return string(stage)
	}
}
