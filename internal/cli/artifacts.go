package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/smithy/internal/cli/render"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

// NewArtifactsCmd creates the artifacts command
func NewArtifactsCmd() *cobra.Command {
	var deployableOnly bool

	cmd := &cobra.Command{
		Use:     "artifacts [query]",
		Aliases: []string{"ls"},
		Short:   "List compiled artifacts",
		Long: `List the compiled artifacts smithy can resolve.

An optional query filters by name or source path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			filter := usecase.ListArtifactsFilter{DeployableOnly: deployableOnly}
			if len(args) > 0 {
				filter.Query = args[0]
			}

			result, err := app.ListArtifacts.Run(cmd.Context(), filter)
			if err != nil {
				return err
			}

			return render.NewArtifactsRenderer(cmd.OutOrStdout(), app.Config.Output).Render(result)
		},
	}

	cmd.Flags().BoolVar(&deployableOnly, "deployable", false, "Only list artifacts with creation bytecode")

	return cmd
}
