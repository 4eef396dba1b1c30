package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/workflow"
)

var ticketsCmd = &cobra.Command{
	Use:     "tickets",
	Aliases: []string{"chamados"},
	Short:   "List, view, edit and delete tickets",
}

var (
	ticketSearch   string
	ticketPriority string

	ticketTitle       string
	ticketDescription string
	ticketNewPriority string
	ticketStatus      string
	ticketTechnician  string
	ticketResponse    string
)

var ticketsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets (optionally searched and filtered by priority)",
	Args:  cobra.NoArgs,
	RunE:  runTicketsList,
}

var ticketsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show ticket details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketsShow,
}

var ticketsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a ticket; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketsEdit,
}

var ticketsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketsDelete,
}

func init() {
	ticketsListCmd.Flags().StringVarP(&ticketSearch, "search", "s", "", "search term (title, description, requester, priority)")
	ticketsListCmd.Flags().StringVarP(&ticketPriority, "priority", "p", model.PriorityAll, "priority filter: Todas|Baixa|Media|Alta")

	f := ticketsEditCmd.Flags()
	f.StringVar(&ticketTitle, "title", "", "new title")
	f.StringVar(&ticketDescription, "description", "", "new description")
	f.StringVar(&ticketNewPriority, "priority", "", "new priority: Baixa|Media|Alta")
	f.StringVar(&ticketStatus, "status", "", "new status")
	f.StringVar(&ticketTechnician, "technician", "", "assigned technician name ("+workflow.NoTechnician+" to unassign)")
	f.StringVar(&ticketResponse, "response", "", "technician response")

	ticketsCmd.AddCommand(ticketsListCmd, ticketsShowCmd, ticketsEditCmd, ticketsDeleteCmd)
}

// ticketWorkflow входит в систему и загружает тикеты.
func ticketWorkflow(cmd *cobra.Command) (*workflow.TicketWorkflow, *cliPrompter, error) {
	c, err := connect(cmd)
	if err != nil {
		return nil, nil, err
	}
	p := newPrompter(cmd, c.in)
	w := workflow.NewTicketWorkflow(c.tickets, c.users, p, c.log)
	if err := w.Reload(cmd.Context()); err != nil {
		return nil, nil, err
	}
	if p.failed {
		return nil, nil, errReported
	}
	return w, p, nil
}

func selectTicket(w *workflow.TicketWorkflow, id string) error {
	if !w.Select(id) {
		return fmt.Errorf("chamado %q não encontrado", id)
	}
	return nil
}

func runTicketsList(cmd *cobra.Command, args []string) error {
	w, _, err := ticketWorkflow(cmd)
	if err != nil {
		return err
	}
	w.SetPriorityFilter(ticketPriority)
	visible := w.SetTerm(ticketSearch)
	printTickets(cmd.OutOrStdout(), visible)
	fmt.Fprintln(cmd.OutOrStdout(), w.Counter())
	if n := w.Skipped(); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d registro(s) ignorado(s): resposta inválida da API\n", n)
	}
	return nil
}

func printTickets(out io.Writer, tickets []model.Ticket) {
	t := table.New().Headers("ID", "Título", "Prioridade", "Status", "Usuário", "Técnico", "Abertura")
	for _, tk := range tickets {
		t.Row(tk.ID, tk.Title, tk.Priority, tk.StatusText(), tk.Requester.Name, tk.AssignedTechnicianText(), tk.OpenedAtText())
	}
	fmt.Fprintln(out, t.Render())
}

func runTicketsShow(cmd *cobra.Command, args []string) error {
	w, p, err := ticketWorkflow(cmd)
	if err != nil {
		return err
	}
	if err := selectTicket(w, args[0]); err != nil {
		return err
	}
	_, err = w.View()
	return p.result(err)
}

func runTicketsEdit(cmd *cobra.Command, args []string) error {
	w, p, err := ticketWorkflow(cmd)
	if err != nil {
		return err
	}
	if err := selectTicket(w, args[0]); err != nil {
		return err
	}
	form, err := w.BeginEdit(cmd.Context())
	if err != nil {
		return p.result(err)
	}
	flags := cmd.Flags()
	if flags.Changed("title") {
		form.Title = ticketTitle
	}
	if flags.Changed("description") {
		form.Description = ticketDescription
	}
	if flags.Changed("priority") {
		form.Priority = ticketNewPriority
	}
	if flags.Changed("status") {
		form.Status = ticketStatus
	}
	if flags.Changed("technician") {
		form.AssignedTechnician = ticketTechnician
	}
	if flags.Changed("response") {
		form.TechnicianResponse = ticketResponse
	}
	if !form.Dirty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma alteração informada.")
		return nil
	}
	return p.result(form.Submit(cmd.Context()))
}

func runTicketsDelete(cmd *cobra.Command, args []string) error {
	w, p, err := ticketWorkflow(cmd)
	if err != nil {
		return err
	}
	if err := selectTicket(w, args[0]); err != nil {
		return err
	}
	_, err = w.Delete(cmd.Context())
	return p.result(err)
}
