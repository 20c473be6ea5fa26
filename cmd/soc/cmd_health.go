package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newHealthCmd(flags *rootFlags) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the prediction service is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(flags)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			client := newClient(cfg, logger)
			status, err := client.Health(ctx)
			if err != nil {
				return err
			}
			logger.Debug("health probe", zap.String("status", status.Status))

			if !status.Online() {
				return fmt.Errorf("service at %s reports status %q", client.HealthEndpoint(), status.Status)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "online: %s\n", status.Message)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Probe timeout")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "soc %s\n", version)
		},
	}
}
