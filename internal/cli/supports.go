package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSupportsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "supports <type>...",
		Short: "Check whether package types are handled",
		Long: `Report for each type whether it is in the catalog and enabled for the
project. Exits non-zero if any type is not supported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := g.buildInstaller(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			unsupported := 0
			for _, tag := range args {
				status := "yes"
				if !inst.Supports(tag) {
					status = "no"
					unsupported++
				}
				fmt.Fprintf(w, "%s\t%s\n", tag, status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if unsupported > 0 {
				return fmt.Errorf("%d of %d type(s) not supported", unsupported, len(args))
			}
			return nil
		},
	}
}
