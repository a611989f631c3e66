package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// typeEntry is one catalog row for display.
type typeEntry struct {
	Type      string   `json:"type"`
	Framework string   `json:"framework"`
	Kind      string   `json:"kind"`
	Path      string   `json:"path"`
	Naming    []string `json:"naming,omitempty"`
}

func newTypesCmd(g *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "types [framework]",
		Short: "List supported package types",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := g.loadCatalog(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}

			tags := cat.Tags()
			if len(args) == 1 {
				if tags = cat.TagsFor(args[0]); len(tags) == 0 {
					return fmt.Errorf("unknown framework %q", args[0])
				}
			}

			entries := make([]typeEntry, 0, len(tags))
			for _, tag := range tags {
				e, _ := cat.Lookup(tag)
				te := typeEntry{Type: tag, Framework: e.Framework, Kind: e.Kind, Path: e.Path}
				for _, s := range e.Naming {
					te.Naming = append(te.Naming, s.String())
				}
				entries = append(entries, te)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "TYPE\tPATH\tNAMING")
			for _, e := range entries {
				naming := strings.Join(e.Naming, ", ")
				if naming == "" {
					naming = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Type, e.Path, naming)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}
