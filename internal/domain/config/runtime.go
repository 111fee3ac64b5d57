package config

import (
	"time"
)

// Toolchain is the build system a project uses
type Toolchain string

const (
	ToolchainFoundry Toolchain = "foundry"
	ToolchainHardhat Toolchain = "hardhat"
	ToolchainNone    Toolchain = ""
)

// Output formats for deployment results
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string
	Toolchain   Toolchain

	// Artifact settings
	Artifact     string   // default artifact deployed by the bare command
	ArtifactDirs []string // relative to ProjectRoot
	Build        bool     // compile before indexing artifacts

	// Chain settings
	Network    *Network
	PrivateKey string

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         string
	Timeout        time.Duration
}

// Network represents network configuration
type Network struct {
	ChainID uint64 `json:"chainId,omitempty"`
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
}
