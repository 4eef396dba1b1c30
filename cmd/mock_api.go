package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/psds-microservice/suptec-client/internal/mockapi"
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Run a local stand-in for the SUPTEC REST API (development)",
	RunE:  runMockAPI,
}

func runMockAPI(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := mockapi.OpenStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	srv, err := mockapi.New(ctx, cfg, store, log)
	if err != nil {
		return fmt.Errorf("mock api: %w", err)
	}
	return srv.Run(ctx)
}
