package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psds-microservice/suptec-client/internal/apiclient"
	"github.com/psds-microservice/suptec-client/internal/config"
	"github.com/psds-microservice/suptec-client/internal/logging"
	"github.com/psds-microservice/suptec-client/internal/service"
	"github.com/psds-microservice/suptec-client/internal/session"
	"github.com/psds-microservice/suptec-client/internal/workflow"
)

// client — собранный клиентский стек для одной команды.
type client struct {
	cfg     *config.Config
	log     *slog.Logger
	sess    *session.Session
	tickets *service.TicketService
	users   *service.UserService
	reg     *service.RegistrationService

	// in — единственный буферизованный stdin команды: его читают и вход,
	// и подтверждения.
	in *bufio.Reader
}

func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.LogLevel, "text", cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	return cfg, log, nil
}

func newClient(cfg *config.Config, log *slog.Logger) (*client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	api := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, log)
	sess := session.New(api, session.Options{
		LoginEndpoint: cfg.API.LoginEndpoint,
		NameClaim:     cfg.API.NameClaim,
	}, log)
	return &client{
		cfg:     cfg,
		log:     log,
		sess:    sess,
		tickets: service.NewTicketService(api, sess, log),
		users:   service.NewUserService(api, sess, log),
		reg:     service.NewRegistrationService(api, log),
	}, nil
}

// connect загружает конфигурацию, собирает стек и входит в систему.
func connect(cmd *cobra.Command) (*client, error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	c, err := newClient(cfg, log)
	if err != nil {
		return nil, err
	}
	c.in = bufio.NewReader(cmd.InOrStdin())
	email, password, err := credentials(c.in, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if !c.sess.Login(cmd.Context(), email, password) {
		return nil, loginError(c.sess.LastStatus())
	}
	return c, nil
}

func loginError(status int) error {
	switch {
	case status == apiclient.StatusTransportError:
		return errors.New("login: não foi possível contactar o servidor")
	case status == 401 || status == 403:
		return errors.New("login: email ou senha inválidos")
	default:
		return fmt.Errorf("login: falha (HTTP %d)", status)
	}
}

// credentials: флаги, затем SUPTEC_EMAIL/SUPTEC_PASSWORD, затем stdin.
func credentials(r *bufio.Reader, out io.Writer) (string, string, error) {
	email := firstNonEmpty(flagEmail, os.Getenv("SUPTEC_EMAIL"))
	password := firstNonEmpty(flagPass, os.Getenv("SUPTEC_PASSWORD"))
	var err error
	if email == "" {
		if email, err = ask(r, out, "Email: "); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		if password, err = ask(r, out, "Senha: "); err != nil {
			return "", "", err
		}
	}
	if email == "" || password == "" {
		return "", "", errors.New("login: email e senha são obrigatórios")
	}
	return email, password, nil
}

func ask(r *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// cliPrompter выводит сообщения workflow в терминал; Confirm спрашивает
// s/N (или сразу да с --yes).
type cliPrompter struct {
	in  *bufio.Reader
	out io.Writer
	yes bool
	// failed — было показано сообщение об ошибке.
	failed bool
}

// errReported — операция не удалась, оператор уже видел сообщение.
var errReported = errors.New("operation failed")

// result превращает итог операции workflow в ошибку команды.
func (p *cliPrompter) result(err error) error {
	switch {
	case errors.Is(err, workflow.ErrDeclined):
		fmt.Fprintln(p.out, "Operação cancelada.")
		return nil
	case err != nil:
		if workflow.IsValidation(err) {
			return errReported
		}
		return err
	case p.failed:
		return errReported
	}
	return nil
}

var _ workflow.Prompter = (*cliPrompter)(nil)

func newPrompter(cmd *cobra.Command, in *bufio.Reader) *cliPrompter {
	return &cliPrompter{in: in, out: cmd.OutOrStdout(), yes: assumeYes}
}

func (p *cliPrompter) print(tag, title, msg string) {
	fmt.Fprintf(p.out, "%s %s\n%s\n", tag, title, msg)
}

func (p *cliPrompter) Warn(title, msg string) { p.print("[aviso]", title, msg) }
func (p *cliPrompter) Info(title, msg string) { p.print("[info]", title, msg) }

func (p *cliPrompter) Error(title, msg string) {
	p.failed = true
	p.print("[erro]", title, msg)
}

func (p *cliPrompter) Confirm(title, msg string) bool {
	p.print("[?]", title, msg)
	if p.yes {
		fmt.Fprintln(p.out, "Confirmar? [s/N]: s")
		return true
	}
	answer, err := ask(p.in, p.out, "Confirmar? [s/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check manager credentials against the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bem-vindo, %s! (%s)\n", c.sess.DisplayName(), c.sess.Email())
		return nil
	},
}
