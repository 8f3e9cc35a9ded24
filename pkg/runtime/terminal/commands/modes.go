package commands

import (
	"fmt"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/spf13/cobra"
)

func NewModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List supported report modes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, m := range domain.Modes {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), m); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
