package domain

import (
	"fmt"
	"strings"
)

// DeploymentRequest asks for one artifact to be deployed with the given
// constructor arguments. It is immutable once constructed.
type DeploymentRequest struct {
	artifactName    string
	constructorArgs []string
}

// NewDeploymentRequest validates and builds a deployment request
func NewDeploymentRequest(artifactName string, constructorArgs ...string) (DeploymentRequest, error) {
	name := strings.TrimSpace(artifactName)
	if name == "" {
		return DeploymentRequest{}, fmt.Errorf("%w: artifact name is required", ErrInvalidRequest)
	}

	args := make([]string, len(constructorArgs))
	copy(args, constructorArgs)

	return DeploymentRequest{
		artifactName:    name,
		constructorArgs: args,
	}, nil
}

// ArtifactName returns the name of the artifact to deploy
func (r DeploymentRequest) ArtifactName() string {
	return r.artifactName
}

// ConstructorArgs returns a copy of the constructor arguments in order
func (r DeploymentRequest) ConstructorArgs() []string {
	args := make([]string, len(r.constructorArgs))
	copy(args, r.constructorArgs)
	return args
}

func (r DeploymentRequest) String() string {
	if len(r.constructorArgs) == 0 {
		return r.artifactName + "()"
	}
	return fmt.Sprintf("%s(%s)", r.artifactName, strings.Join(r.constructorArgs, ", "))
}

// DeploymentResult is produced once per confirmed deployment
type DeploymentResult struct {
	Artifact        string `json:"artifact" yaml:"artifact"`
	Address         string `json:"address" yaml:"address"`
	TransactionHash string `json:"transactionHash" yaml:"transactionHash"`
	ChainID         uint64 `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	BlockNumber     uint64 `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"`
	GasUsed         uint64 `json:"gasUsed,omitempty" yaml:"gasUsed,omitempty"`
	Deployer        string `json:"deployer,omitempty" yaml:"deployer,omitempty"`
}

// DeploymentState tracks a single request from submission to its final state
type DeploymentState string

const (
	DeploymentPending   DeploymentState = "pending"
	DeploymentSucceeded DeploymentState = "succeeded"
	DeploymentFailed    DeploymentState = "failed"
)

// IsFinal reports whether the state is terminal
func (s DeploymentState) IsFinal() bool {
	return s == DeploymentSucceeded || s == DeploymentFailed
}
