package cmd

import (
	"context"
	"io"
	"os"

	"github.com/GESkunkworks/ebsreaper"
	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
)

// name is the command name used for logging
const name = "ebsreaper"

var (
	cfg    = NewReaperConfig()
	logger log15.Logger
)

var rootCmd = &cobra.Command{
	Use:          name,
	Short:        "Deletes unattached EBS volumes in every AWS region.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger = newLogger(cmd.OutOrStdout(), cfg.Debug)
	},
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		return runReaper(cmd.Context(), nil)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Report unattached volumes without deleting them")
	rootCmd.Flags().StringVar(&cfg.Region, "region", "", "Region used to enumerate all other regions (default from AWS config, then "+ebsreaper.DefaultRegion+")")
}

// GetCommand returns the main cobra.Command object for this application
func GetCommand() *cobra.Command {
	return rootCmd
}

func newLogger(w io.Writer, debug bool) log15.Logger {
	lvl := log15.LvlInfo
	if debug {
		lvl = log15.LvlDebug
	}
	return ebsreaper.NewLogger(w, lvl)
}

// runReaper performs a single sweep. provider overrides the AWS backed
// provider when non-nil.
func runReaper(ctx context.Context, provider ebsreaper.Provider) error {
	if logger == nil {
		logger = newLogger(os.Stdout, cfg.Debug)
	}
	logger.Debug("starting sweep", "dry_run", cfg.DryRun, "region", cfg.Region)

	input := ebsreaper.ReaperInput{
		Provider: provider,
		Logger:   &logger,
		DryRun:   &cfg.DryRun,
	}
	if provider == nil {
		sess, err := ebsreaper.NewSession(cfg.Region)
		if err != nil {
			logger.Crit("could not create aws session", "error", err)
			return err
		}
		input.Session = sess
	}

	r, err := ebsreaper.New(&input)
	if err != nil {
		return err
	}
	if _, err = r.Run(ctx); err != nil {
		logger.Crit("sweep failed", "error", err)
		return err
	}
	return nil
}
