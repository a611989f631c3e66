package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peter-mw/installers/internal/manifest"
)

func newValidateCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-file]",
		Short: "Check a project's installer settings",
		Long: `Validate extra.installer-paths, extra.installer-disable and
extra.installer-name against the project schema, and report path templates
that use unknown placeholders.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				base, err := g.resolveBaseDir()
				if err != nil {
					return err
				}
				path, _ = g.projectPath(base)
			}

			result, err := manifest.ValidateProjectFile(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Valid {
				fmt.Fprintf(out, "%s: valid\n", path)
				return nil
			}
			for _, issue := range result.Issues {
				loc := issue.Path
				if loc == "" {
					loc = "/"
				}
				fmt.Fprintf(out, "%s: %s: %s\n", path, loc, issue.Message)
			}
			return fmt.Errorf("%s has %d issue(s)", path, len(result.Issues))
		},
	}
}
