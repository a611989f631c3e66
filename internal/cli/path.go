package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/peter-mw/installers/internal/installer"
	"github.com/peter-mw/installers/internal/manifest"
)

type pathOptions struct {
	version       string
	installerName string
	from          string
	explain       bool
	json          bool
}

func newPathCmd(g *globalOptions) *cobra.Command {
	opts := &pathOptions{}

	cmd := &cobra.Command{
		Use:   "path <type> <package>",
		Short: "Print the install path of a package",
		Long: `Print the directory a package of the given type is installed into.

The package can also be read from its own manifest with --from, in which case
name, type, version and extra.installer-name come from that file.`,
		Example: `  installers path drupal-module drupal/token
  installers path cakephp-plugin shama/ftp --name FTP
  installers path --from vendor/shama/ftp/composer.json --explain`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.from != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := opts.pkg(args)
			if err != nil {
				return err
			}
			inst, err := g.buildInstaller(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			res, err := inst.Resolve(pkg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case opts.json:
				return printJSON(out, res.Summary())
			case opts.explain:
				return printExplain(out, res)
			default:
				_, err = fmt.Fprintln(out, res.Path)
				return err
			}
		},
	}

	cmd.Flags().StringVar(&opts.version, "version", "", "package version")
	cmd.Flags().StringVar(&opts.installerName, "name", "", "installer-name override for the package")
	cmd.Flags().StringVar(&opts.from, "from", "", "read the package from its manifest file")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "show how the path was derived")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output in JSON format")
	return cmd
}

// pkg builds the package from arguments or from --from. Explicit flags
// override values read from the manifest.
func (o *pathOptions) pkg(args []string) (manifest.Package, error) {
	var pkg manifest.Package
	if o.from != "" {
		p, err := manifest.ParsePackage(o.from)
		if err != nil {
			return manifest.Package{}, err
		}
		pkg = *p
	} else {
		pkg = manifest.NewPackage(args[1], args[0], "")
	}
	if o.version != "" {
		pkg.Version = o.version
	}
	if o.installerName != "" {
		extra := make(map[string]interface{}, len(pkg.Extra)+1)
		for k, v := range pkg.Extra {
			extra[k] = v
		}
		extra[manifest.KeyInstallerName] = o.installerName
		pkg.Extra = extra
	}
	return pkg, nil
}

func printExplain(w io.Writer, res *installer.Resolution) error {
	s := res.Summary()
	rule := s.Rule
	if rule == "" {
		rule = "-"
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "package:\t%s\n", s.Package)
	fmt.Fprintf(tw, "type:\t%s (framework %s, kind %s)\n", s.Type, s.Framework, s.Kind)
	fmt.Fprintf(tw, "source:\t%s\n", s.Source)
	fmt.Fprintf(tw, "rule:\t%s\n", rule)
	fmt.Fprintf(tw, "template:\t%s\n", s.Template)
	fmt.Fprintf(tw, "name:\t%s\n", s.Name)
	fmt.Fprintf(tw, "relative:\t%s\n", s.Relative)
	fmt.Fprintf(tw, "path:\t%s\n", s.Path)
	return tw.Flush()
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
