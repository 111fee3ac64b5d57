package cli

import (
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <artifact> [constructor-args...]",
		Short: "Deploy a named artifact",
		Long: `Deploy a compiled artifact by name and print its address.

The artifact can be a bare contract name or a fully qualified
<source-path>:<Name> when several contracts share a name. Constructor
arguments are given as literals and encoded against the artifact ABI.`,
		Example: `  # Deploy the default artifact to a local node
  smithy deploy TokenSmithy

  # Deploy with constructor arguments
  smithy deploy Token "Smithy Token" STK 1000000 --network sepolia

  # Disambiguate by source path
  smithy deploy contracts/v2/Token.sol:Token`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			return runDeploy(cmd, app, args[0], args[1:])
		},
	}
}
