package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/search"
	"github.com/psds-microservice/suptec-client/internal/workflow"
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"usuarios"},
	Short:   "List, view, create, edit and delete managers, technicians and users",
}

var (
	userSearch string
	userType   string

	// newUserType — --type у users add (без значения "Todos").
	newUserType string

	userName        string
	userEmail       string
	userPassword    string
	userPhone       string
	userAffiliation string
)

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users of all types",
	Args:  cobra.NoArgs,
	RunE:  runUsersList,
}

var usersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show user details",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersShow,
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a manager, technician or user",
	Args:  cobra.NoArgs,
	RunE:  runUsersAdd,
}

var usersEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a user; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersEdit,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user (not yourself)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

func init() {
	usersListCmd.Flags().StringVarP(&userSearch, "search", "s", "", "search term (name, email, phone, sector/specialty, type)")
	for _, c := range []*cobra.Command{usersListCmd, usersShowCmd, usersEditCmd, usersDeleteCmd} {
		c.Flags().StringVarP(&userType, "type", "t", search.UserVariantAll, "user type: Todos|Gerente|Tecnico|Usuario")
	}

	f := usersAddCmd.Flags()
	f.StringVarP(&newUserType, "type", "t", "", "user type: Gerente|Tecnico|Usuario")
	f.StringVar(&userName, "name", "", "full name")
	f.StringVar(&userEmail, "email-address", "", "email of the new user")
	f.StringVar(&userPassword, "user-password", "", "password of the new user")
	f.StringVar(&userPhone, "phone", "", "phone")
	f.StringVar(&userAffiliation, "affiliation", "", "sector (manager, user) or specialty (technician)")

	f = usersEditCmd.Flags()
	f.StringVar(&userName, "name", "", "new name")
	f.StringVar(&userEmail, "email-address", "", "new email")
	f.StringVar(&userPhone, "phone", "", "new phone")
	f.StringVar(&userAffiliation, "affiliation", "", "new sector or specialty")
	f.StringVar(&userPassword, "new-password", "", "change the password")

	usersCmd.AddCommand(usersListCmd, usersShowCmd, usersAddCmd, usersEditCmd, usersDeleteCmd)
}

func userWorkflow(cmd *cobra.Command) (*workflow.UserWorkflow, *cliPrompter, error) {
	c, err := connect(cmd)
	if err != nil {
		return nil, nil, err
	}
	p := newPrompter(cmd, c.in)
	w := workflow.NewUserWorkflow(c.users, c.reg, c.sess, p, c.log)
	if err := w.Reload(cmd.Context()); err != nil {
		return nil, nil, err
	}
	if p.failed {
		return nil, nil, errReported
	}
	return w, p, nil
}

// selectUser: ID уникален только в пределах типа, поэтому сначала
// применяется фильтр --type.
func selectUser(w *workflow.UserWorkflow, id string) error {
	w.SetVariantFilter(userType)
	if !w.Select(id) {
		return fmt.Errorf("usuário %q não encontrado", id)
	}
	return nil
}

func runUsersList(cmd *cobra.Command, args []string) error {
	w, _, err := userWorkflow(cmd)
	if err != nil {
		return err
	}
	w.SetVariantFilter(userType)
	printUsers(cmd.OutOrStdout(), w.SetTerm(userSearch))
	fmt.Fprintln(cmd.OutOrStdout(), w.Counter())
	if n := w.Skipped(); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d registro(s) ignorado(s): resposta inválida da API\n", n)
	}
	return nil
}

func printUsers(out io.Writer, users []model.User) {
	t := table.New().Headers("ID", "Nome", "Email", "Telefone", "Tipo", "Setor/Especialidade")
	for _, u := range users {
		t.Row(u.ID, u.Name, u.Email, u.Phone, u.VariantLabel(), u.AffiliationText())
	}
	fmt.Fprintln(out, t.Render())
}

func runUsersShow(cmd *cobra.Command, args []string) error {
	w, p, err := userWorkflow(cmd)
	if err != nil {
		return err
	}
	if err := selectUser(w, args[0]); err != nil {
		return err
	}
	_, err = w.View()
	return p.result(err)
}

func runUsersAdd(cmd *cobra.Command, args []string) error {
	w, p, err := userWorkflow(cmd)
	if err != nil {
		return err
	}
	form := w.BeginCreate()
	if v, ok := model.ParseVariant(newUserType); ok {
		form.Variant = v
	}
	form.Name = userName
	form.Email = userEmail
	form.Password = userPassword
	form.Phone = userPhone
	form.Affiliation = userAffiliation
	return p.result(form.Submit(cmd.Context()))
}

func runUsersEdit(cmd *cobra.Command, args []string) error {
	w, p, err := userWorkflow(cmd)
	if err != nil {
		return err
	}
	if err := selectUser(w, args[0]); err != nil {
		return err
	}
	form, err := w.BeginEdit()
	if err != nil {
		return p.result(err)
	}
	flags := cmd.Flags()
	if flags.Changed("name") {
		form.Name = userName
	}
	if flags.Changed("email-address") {
		form.Email = userEmail
	}
	if flags.Changed("phone") {
		form.Phone = userPhone
	}
	if flags.Changed("affiliation") {
		form.Affiliation = userAffiliation
	}
	if flags.Changed("new-password") {
		form.ChangePassword = true
		form.NewPassword = userPassword
		form.ConfirmPassword = userPassword
	}
	if !form.Dirty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma alteração informada.")
		return nil
	}
	return p.result(form.Submit(cmd.Context()))
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	w, p, err := userWorkflow(cmd)
	if err != nil {
		return err
	}
	if err := selectUser(w, args[0]); err != nil {
		return err
	}
	_, err = w.Delete(cmd.Context())
	return p.result(err)
}
