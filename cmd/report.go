package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/psds-microservice/suptec-client/internal/report"
	"github.com/psds-microservice/suptec-client/internal/workflow"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"relatorio"},
	Short:   "Print ticket KPIs, distributions and monthly volume",
	Args:    cobra.NoArgs,
	RunE:    runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	c, err := connect(cmd)
	if err != nil {
		return err
	}
	p := newPrompter(cmd, c.in)
	tw := workflow.NewTicketWorkflow(c.tickets, nil, p, c.log)
	uw := workflow.NewUserWorkflow(c.users, c.reg, c.sess, p, c.log)
	if err := tw.Reload(cmd.Context()); err != nil {
		return err
	}
	if err := uw.Reload(cmd.Context()); err != nil {
		return err
	}
	if p.failed {
		return errReported
	}
	fmt.Fprint(cmd.OutOrStdout(), report.Render(report.Build(tw.All(), uw.All(), time.Now())))
	return nil
}
