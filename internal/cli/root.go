package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/smithy/internal/app"
	"github.com/trebuchet-org/smithy/internal/cli/render"
	"github.com/trebuchet-org/smithy/internal/config"
	"github.com/trebuchet-org/smithy/internal/domain"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// initApp builds the application; replaced in tests
var initApp = app.InitApp

// Execute runs the CLI with the process arguments and returns the exit code
func Execute() int {
	return ExecuteContext(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteContext runs the CLI and maps any error to exit status 1
func ExecuteContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, render.FormatError(err))
		return 1
	}
	return 0
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "smithy",
		Short: "Deploy a compiled contract and print its address",
		Long: `Smithy resolves a compiled contract artifact from a Foundry or Hardhat
project, deploys it to the configured network, waits for the deployment to be
mined and prints the deployed address.

Run without arguments it deploys the default artifact (TokenSmithy).`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// A missing project root is reported by config loading
			projectRoot, _ := config.FindProjectRoot()

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := initApp(v, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			return runDeploy(cmd, app, app.Config.Artifact, nil)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (foundry.toml rpc endpoint, localhost, hardhat)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC URL to deploy to, overrides --network")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Minute, "Abort the deployment after this long (0 disables)")
	rootCmd.PersistentFlags().Bool("no-build", false, "Skip compiling the project before resolving artifacts")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	artifactsCmd := NewArtifactsCmd()
	artifactsCmd.GroupID = "main"
	rootCmd.AddCommand(artifactsCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// runDeploy deploys one artifact and releases the app afterwards
func runDeploy(cmd *cobra.Command, app *app.App, name string, args []string) error {
	defer app.Close()

	req, err := domain.NewDeploymentRequest(name, args...)
	if err != nil {
		return err
	}

	_, err = app.DeployContract.Run(cmd.Context(), req)
	return err
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
