package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "suptec",
	Short: "SUPTEC helpdesk manager client: tickets, users and reports (CLI + TUI)",
	// Без подкоманды — интерактивный режим.
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Флаги, общие для всех команд.
var (
	configPath string
	flagEmail  string
	flagPass   string
	assumeYes  bool
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file (default $SUPTEC_CONFIG or ./suptec.yaml)")
	pf.StringVar(&flagEmail, "email", "", "manager email (default $SUPTEC_EMAIL)")
	pf.StringVar(&flagPass, "password", "", "manager password (default $SUPTEC_PASSWORD)")
	pf.BoolVarP(&assumeYes, "yes", "y", false, "answer yes to confirmations")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(ticketsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(mockAPICmd)
	rootCmd.AddCommand(migrateCmd)
}
