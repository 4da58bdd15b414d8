package cmd

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
	"github.com/Aman-CERP/seroost/internal/preflight"
)

func newDoctorCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that indexing can run",
		Long: `Check the configured directory, the config directory, free disk space,
the open file limit and the index lock. Exits non-zero when a required check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checker := preflight.New(preflight.WithOutput(cmd.OutOrStdout()), preflight.WithVerbose(verbose), preflight.WithColor(a.color()))
			results := checker.RunAll(cmd.Context(), preflight.Target{IndexPath: a.cfg.IndexPath, Paths: a.paths})

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(map[string]any{
					"status": checker.SummaryStatus(results),
					"checks": results,
				}); err != nil {
					return err
				}
			} else {
				checker.PrintResults(results)
			}

			if checker.HasCriticalFailures(results) {
				return serrors.New(serrors.ErrCodeInvalidInput, "system check failed", nil).
					WithSuggestion("Fix the failed checks above and run 'seroost doctor' again")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show check details")

	return cmd
}
