package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/psds-microservice/suptec-client/internal/config"
	"github.com/psds-microservice/suptec-client/internal/logging"
	"github.com/psds-microservice/suptec-client/internal/tui"
	"github.com/psds-microservice/suptec-client/internal/workflow"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal interface (default command)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, closer, err := logging.ForTUI(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	c, err := newClient(cfg, log)
	if err != nil {
		return err
	}
	// Подтверждения TUI показывает сам, workflow получает готовый ответ.
	prompt := workflow.NewRecordingPrompter(true)
	m := tui.New(tui.Deps{
		Session: c.sess,
		Tickets: workflow.NewTicketWorkflow(c.tickets, c.users, prompt, log),
		Users:   workflow.NewUserWorkflow(c.users, c.reg, c.sess, prompt, log),
		Prompt:  prompt,
		Log:     log,
		Now:     time.Now,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
