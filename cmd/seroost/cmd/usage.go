package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/seroost/internal/output"
)

func newUsageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "usage",
		Short:       "Show a detailed usage guide",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return output.RenderUsage(cmd.OutOrStdout(), a.color())
		},
	}
}
