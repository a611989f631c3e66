package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/peter-mw/installers/internal/branding"
	"github.com/peter-mw/installers/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	project     string
	baseDir     string
	catalogFile string
	verbose     bool
}

// newRootCmd builds the command tree. Log output goes to logOut.
func newRootCmd(logOut io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` computes where framework-specific packages are installed inside a
project: CMS modules, themes, plugins and similar extensions, honouring the
project's installer-paths overrides and installer-disable settings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Load()
			level := parseLevel(config.Get(config.KeyLogLevel))
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.project, "project", "", "project manifest (default: "+config.KeyProjectFile+" setting, composer.json)")
	pf.StringVar(&opts.baseDir, "base-dir", "", "directory install paths are resolved against (default: working directory)")
	pf.StringVar(&opts.catalogFile, "catalog", "", "YAML file with extra or replacement package types")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPathCmd(opts))
	root.AddCommand(newSupportsCmd(opts))
	root.AddCommand(newTypesCmd(opts))
	root.AddCommand(newPlanCmd(opts))
	root.AddCommand(newValidateCmd(opts))
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := newRootCmd(os.Stderr).ExecuteContext(context.Background())
	if err != nil {
		newLogger(os.Stderr, log.InfoLevel).Error(err)
	}
	return err
}
