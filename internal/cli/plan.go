package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/peter-mw/installers/internal/installer"
	"github.com/peter-mw/installers/internal/manifest"
)

// planEntry is the outcome for one locked package.
type planEntry struct {
	Package string `json:"package"`
	Type    string `json:"type"`
	Version string `json:"version,omitempty"`
	Path    string `json:"path,omitempty"`
	Source  string `json:"source,omitempty"`
	Skipped string `json:"skipped,omitempty"`
}

func newPlanCmd(g *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan [composer.lock]",
		Short: "Resolve install paths for every package in a lock file",
		Long: `Read packages and packages-dev from a lock file and print where each one
is installed. Packages whose type is not handled are listed as skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			inst, err := g.buildInstaller(logger)
			if err != nil {
				return err
			}

			lockPath := filepath.Join(inst.BaseDir(), "composer.lock")
			if len(args) == 1 {
				lockPath = args[0]
			}
			pkgs, err := manifest.ParseLock(lockPath)
			if err != nil {
				return err
			}

			entries := buildPlan(inst, pkgs)
			logger.Debug("planned packages", "file", lockPath, "count", len(entries))

			if asJSON {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "PACKAGE\tTYPE\tPATH")
			for _, e := range entries {
				path := e.Path
				if e.Skipped != "" {
					path = "(" + e.Skipped + ")"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Package, e.Type, path)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

// buildPlan resolves every package. Unsupported types are recorded, not
// returned as errors.
func buildPlan(inst *installer.Installer, pkgs []manifest.Package) []planEntry {
	entries := make([]planEntry, 0, len(pkgs))
	for _, pkg := range pkgs {
		e := planEntry{Package: pkg.Name, Type: pkg.Type, Version: pkg.Version}
		res, err := inst.Resolve(pkg)
		var ute *installer.UnsupportedTypeError
		switch {
		case errors.As(err, &ute) && ute.Disabled:
			e.Skipped = "disabled"
		case err != nil:
			e.Skipped = "not handled"
		default:
			e.Path = res.Path
			e.Source = res.Source
		}
		entries = append(entries, e)
	}
	return entries
}
