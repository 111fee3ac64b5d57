package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/smithy/internal/adapters/abi"
	"github.com/trebuchet-org/smithy/internal/domain"
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/domain/models"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

// Backend is the chain access the provider needs. *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dialer opens a Backend for an RPC URL
type Dialer func(ctx context.Context, rpcURL string) (Backend, error)

// DialRPC connects to an RPC endpoint with ethclient
func DialRPC(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Provider deploys artifacts to an EVM chain with go-ethereum
type Provider struct {
	artifacts  usecase.ArtifactRepository
	encoder    *abi.Encoder
	network    *config.Network
	privateKey string
	dial       Dialer
	log        *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewProvider creates a new EVM deployment provider
func NewProvider(
	cfg *config.RuntimeConfig,
	artifacts usecase.ArtifactRepository,
	encoder *abi.Encoder,
	log *slog.Logger,
) *Provider {
	return newProvider(cfg, artifacts, encoder, DialRPC, log)
}

func newProvider(
	cfg *config.RuntimeConfig,
	artifacts usecase.ArtifactRepository,
	encoder *abi.Encoder,
	dial Dialer,
	log *slog.Logger,
) *Provider {
	return &Provider{
		artifacts:  artifacts,
		encoder:    encoder,
		network:    cfg.Network,
		privateKey: cfg.PrivateKey,
		dial:       dial,
		log:        log.With("component", "EVMProvider"),
	}
}

// ResolveArtifact looks up a compiled artifact by name
func (p *Provider) ResolveArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	return p.artifacts.GetArtifact(ctx, name)
}

// Deploy signs and broadcasts the creation transaction for artifact
func (p *Provider) Deploy(ctx context.Context, artifact *models.Artifact, args []string) (*usecase.PendingDeployment, error) {
	if !artifact.Deployable() {
		return nil, fmt.Errorf("%w: %s has no creation bytecode (interface or abstract contract?)",
			domain.ErrNotDeployable, artifact.FullyQualifiedName())
	}
	if artifact.NeedsLinking() {
		return nil, fmt.Errorf("%w: %s requires library linking", domain.ErrNotDeployable, artifact.FullyQualifiedName())
	}

	parsed, err := p.encoder.ParseABI(artifact.ABI)
	if err != nil {
		return nil, err
	}
	params, err := p.encoder.ConstructorArgs(parsed, args)
	if err != nil {
		return nil, fmt.Errorf("invalid constructor arguments: %w", err)
	}

	key, err := p.signerKey()
	if err != nil {
		return nil, err
	}

	backend, chainID, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	p.log.Debug("deploying", "artifact", artifact.FullyQualifiedName(), "from", auth.From.Hex(), "chainId", chainID)

	address, tx, _, err := bind.DeployContract(auth, *parsed, common.FromHex(artifact.Bytecode), backend, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to send deployment transaction: %w", err)
	}

	return &usecase.PendingDeployment{
		Artifact:        artifact,
		Address:         address.Hex(),
		TransactionHash: tx.Hash().Hex(),
		Deployer:        auth.From.Hex(),
		Tx:              tx,
	}, nil
}

// AwaitConfirmation waits for the deployment to be mined and its code to be present
func (p *Provider) AwaitConfirmation(ctx context.Context, pending *usecase.PendingDeployment) (*domain.DeploymentResult, error) {
	tx, ok := pending.Tx.(*types.Transaction)
	if !ok {
		return nil, fmt.Errorf("pending deployment %s has no transaction", pending.TransactionHash)
	}

	backend, chainID, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", pending.TransactionHash, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s", domain.ErrDeploymentReverted, pending.TransactionHash)
	}

	address, err := bind.WaitDeployed(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("deployment of %s not confirmed: %w", pending.Artifact.Name, err)
	}

	result := &domain.DeploymentResult{
		Artifact:        pending.Artifact.Name,
		Address:         address.Hex(),
		TransactionHash: pending.TransactionHash,
		ChainID:         chainID.Uint64(),
		GasUsed:         receipt.GasUsed,
		Deployer:        pending.Deployer,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return result, nil
}

// Close releases the RPC connection
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if closer, ok := p.backend.(interface{ Close() }); ok {
		closer.Close()
	}
	p.backend = nil
	return nil
}

// connect dials the configured network once and checks its chain ID
func (p *Provider) connect(ctx context.Context) (Backend, *big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.backend != nil {
		return p.backend, p.chainID, nil
	}
	if p.network == nil || p.network.RPCURL == "" {
		return nil, nil, fmt.Errorf("no network configured")
	}

	backend, err := p.dial(ctx, p.network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", p.network.Name, err)
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if p.network.ChainID != 0 && chainID.Uint64() != p.network.ChainID {
		return nil, nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", p.network.ChainID, chainID.Uint64())
	}

	p.backend = backend
	p.chainID = chainID
	return backend, chainID, nil
}

func (p *Provider) signerKey() (*ecdsa.PrivateKey, error) {
	if p.privateKey == "" {
		return nil, fmt.Errorf("no deployer key configured (set SMITHY_PRIVATE_KEY)")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(p.privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentProvider = (*Provider)(nil)
