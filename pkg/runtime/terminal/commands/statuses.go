package commands

import (
	"fmt"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/spf13/cobra"
)

type StatusesCmd struct {
	cancelled bool
}

func NewStatusesCmd() *cobra.Command {
	sc := &StatusesCmd{}
	cmd := &cobra.Command{
		Use:   "statuses",
		Short: "List claim statuses accepted by --status",
		RunE:  sc.run,
	}

	cmd.Flags().BoolVar(&sc.cancelled, "cancelled", false, "Only list statuses hidden by --without-cancelled")

	return cmd
}

func (sc *StatusesCmd) run(cmd *cobra.Command, _ []string) error {
	for _, s := range domain.Statuses {
		if sc.cancelled && !s.IsCancelled() {
			continue
		}
		label := string(s)
		switch {
		case s.IsDelivered():
			label += " (delivered)"
		case s.IsCancelled():
			label += " (cancelled)"
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), label); err != nil {
			return err
		}
	}
	return nil
}
