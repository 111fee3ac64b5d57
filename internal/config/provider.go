package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/smithy/internal/domain/config"
)

// DefaultArtifact is deployed when no artifact is named
const DefaultArtifact = "TokenSmithy"

var hardhatConfigFiles = []string{
	"hardhat.config.js",
	"hardhat.config.ts",
	"hardhat.config.cjs",
	"hardhat.config.mjs",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	// .env values must be visible before viper reads any env-backed key
	loadEnvFiles(projectRoot)

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".smithy"),
		Toolchain:      DetectToolchain(projectRoot),
		Artifact:       v.GetString("artifact"),
		PrivateKey:     v.GetString("private_key"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Output:         strings.ToLower(v.GetString("output")),
		Timeout:        v.GetDuration("timeout"),
	}

	// Without a toolchain there is nothing to compile; use whatever is on disk
	cfg.Build = v.GetBool("build") && !v.GetBool("no_build") && cfg.Toolchain != config.ToolchainNone

	switch cfg.Output {
	case config.OutputText, config.OutputJSON, config.OutputYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q (expected text, json or yaml)", cfg.Output)
	}

	var foundryConfig *config.FoundryConfig
	if cfg.Toolchain == config.ToolchainFoundry {
		foundryConfig, err = loadFoundryConfig(projectRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to load foundry config: %w", err)
		}
	}

	cfg.ArtifactDirs = v.GetStringSlice("artifacts_dir")
	if len(cfg.ArtifactDirs) == 0 {
		cfg.ArtifactDirs = defaultArtifactDirs(cfg.Toolchain, foundryConfig)
	}

	var endpoints map[string]string
	if foundryConfig != nil {
		endpoints = foundryConfig.RpcEndpoints
	}
	network, err := NewNetworkResolver(endpoints).ResolveWithOverride(v.GetString("network"), v.GetString("rpc_url"))
	if err != nil {
		return nil, err
	}
	if chainID := v.GetUint64("chain_id"); chainID != 0 {
		network.ChainID = chainID
	}
	cfg.Network = network

	return cfg, nil
}

func defaultArtifactDirs(toolchain config.Toolchain, foundryConfig *config.FoundryConfig) []string {
	switch toolchain {
	case config.ToolchainFoundry:
		return []string{foundryConfig.OutDir()}
	case config.ToolchainHardhat:
		return []string{"artifacts"}
	default:
		return []string{"out", "artifacts"}
	}
}

// DetectToolchain reports which build system a project directory uses
func DetectToolchain(dir string) config.Toolchain {
	if fileExists(filepath.Join(dir, "foundry.toml")) {
		return config.ToolchainFoundry
	}
	for _, name := range hardhatConfigFiles {
		if fileExists(filepath.Join(dir, name)) {
			return config.ToolchainHardhat
		}
	}
	return config.ToolchainNone
}

// FindProjectRoot walks up from current directory to find a Foundry or Hardhat project
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindProjectRootFrom(dir)
}

// FindProjectRootFrom walks up from dir to find a Foundry or Hardhat project
func FindProjectRootFrom(dir string) (string, error) {
	for {
		if DetectToolchain(dir) != config.ToolchainNone {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry or Hardhat project (foundry.toml or hardhat.config.* not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	if projectRoot != "" {
		v.AddConfigPath(filepath.Join(projectRoot, ".smithy"))
	}

	// Set up environment variables
	v.SetEnvPrefix("SMITHY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("artifact", DefaultArtifact)
	v.SetDefault("network", "localhost")
	v.SetDefault("timeout", "5m")
	v.SetDefault("build", true)
	v.SetDefault("output", config.OutputText)
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(flagKey(f.Name), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
