package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/seroost/configs"
	"github.com/Aman-CERP/seroost/internal/config"
	serrors "github.com/Aman-CERP/seroost/internal/errors"
	"github.com/Aman-CERP/seroost/internal/logging"
	"github.com/Aman-CERP/seroost/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show file locations and the effective configuration",
		Long: `Show where seroost keeps its files and the configuration in effect after
defaults, the config file, SEROOST_* environment variables and flags.

Set SEROOST_CONFIG_DIR to move the config and index files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			out := output.New(w, a.color())

			out.Field("Config file:", a.paths.ConfigFile)
			out.Field("Index file: ", a.paths.IndexFile)
			out.Field("Log file:   ", logging.DefaultLogPath())
			out.Newline()

			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return serrors.InternalError("failed to encode configuration", err)
			}
			_, err = fmt.Fprint(w, string(data))
			return err
		},
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented config file with the defaults",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths := config.ResolvePaths()
			if err := config.WriteTemplate(paths, []byte(configs.ConfigTemplate), force); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", paths.ConfigFile)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing config file")

	return cmd
}
