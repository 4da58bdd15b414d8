// Package cmd provides the CLI commands for seroost.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/seroost/internal/config"
	serrors "github.com/Aman-CERP/seroost/internal/errors"
	"github.com/Aman-CERP/seroost/internal/logging"
	"github.com/Aman-CERP/seroost/internal/profiling"
	"github.com/Aman-CERP/seroost/internal/ui"
	"github.com/Aman-CERP/seroost/pkg/version"
)

// skipConfig marks commands that run without loading the config file.
const skipConfig = "seroost/skip-config"

// app is the state shared by one root command and its subcommands.
type app struct {
	indexPath   string
	maxFileSize int
	debug       bool
	noColor     bool
	profile     profiling.Options

	cfg   *config.Config
	paths config.Paths

	profiler       *profiling.Session
	loggingCleanup func()
}

// NewRootCmd creates the root command for the seroost CLI.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "seroost",
		Short: "Local TF-IDF search over your documents",
		Long: `seroost indexes a directory of text, markup, PDF and source files and
ranks them against free-text queries with TF-IDF.

Point it at a directory once; the path is remembered:

  seroost --index-path ~/documents index
  seroost search "systems programming"`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "No command provided. Use 'seroost --help' to see available commands, or 'seroost usage' for a walkthrough.")
			return err
		},
	}
	cmd.SetVersionTemplate("seroost version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&a.indexPath, "index-path", "i", "", "Directory to index; saved to the config file for later runs")
	cmd.PersistentFlags().IntVarP(&a.maxFileSize, "max-file-size", "m", 0, "Skip files larger than this many megabytes (default from config, 25)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to stderr and the log file")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&a.profile.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&a.profile.Heap, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&a.profile.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = a.setup
	cmd.PersistentPostRunE = func(*cobra.Command, []string) error { return a.close() }

	cmd.AddCommand(newIndexCmd(a))
	cmd.AddCommand(newSearchCmd(a))
	cmd.AddCommand(newStatusCmd(a))
	cmd.AddCommand(newDoctorCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newUsageCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd, a
}

// setup installs logging and profiling, persists --index-path and loads the
// effective configuration.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logCfg := logging.DefaultConfig()
	switch {
	case cmd.Name() == "serve":
		logCfg = logging.ServeConfig(a.debug)
	case a.debug:
		logCfg = logging.DebugConfig()
	}
	cleanup, err := logging.Install(logCfg)
	if err != nil {
		if a.debug {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
	} else {
		a.loggingCleanup = cleanup
	}
	slog.Debug("command started", slog.String("command", cmd.CommandPath()), slog.String("version", version.Version))

	if a.profile.Enabled() {
		s, err := profiling.Start(a.profile)
		if err != nil {
			return err
		}
		a.profiler = s
	}

	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}

	a.paths = config.ResolvePaths()
	if a.indexPath != "" {
		abs, err := config.SetIndexPath(a.paths, a.indexPath)
		if err != nil {
			return err
		}
		slog.Info("index path saved", slog.String("index_path", abs), slog.String("config", a.paths.ConfigFile))
	}

	cfg, err := config.Load(a.paths)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-file-size") {
		if a.maxFileSize <= 0 {
			return serrors.ValidationError(fmt.Sprintf("--max-file-size must be positive, got %d", a.maxFileSize), nil)
		}
		cfg.MaxFileSizeMB = a.maxFileSize
	}
	a.cfg = cfg
	a.paths = a.paths.ForConfig(cfg)
	return nil
}

// close stops profiling and logging. Safe to call more than once.
func (a *app) close() error {
	err := a.profiler.Stop()
	a.profiler = nil
	if a.loggingCleanup != nil {
		a.loggingCleanup()
		a.loggingCleanup = nil
	}
	return err
}

// color reports whether styled output is wanted.
func (a *app) color() bool {
	return !a.noColor && !ui.DetectNoColor()
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	cmd, a := newRootCmd()
	err := cmd.Execute()
	// PersistentPostRunE is skipped when a command fails.
	_ = a.close()
	if err != nil {
		fmt.Fprint(os.Stderr, serrors.FormatForCLI(err))
	}
	return err
}
