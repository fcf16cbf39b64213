package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/workoutlog/internal/api/httpclient"
	"github.com/at-ishikawa/workoutlog/internal/config"
	"github.com/at-ishikawa/workoutlog/internal/workout"
)

func newHealthCommand() *cobra.Command {
	var wait, interval time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the workout log API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wait < 0 {
				return fmt.Errorf("--wait must not be negative")
			}
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}

			return withClient(func(cfg *config.Config, client *httpclient.Client) error {
				var health workout.HealthStatus
				if err := retry.Do(
					func() error {
						var err error
						health, err = client.HealthCheck(cmd.Context())
						return err
					},
					retry.Context(cmd.Context()),
					retry.Attempts(uint(wait/interval)+1),
					retry.Delay(interval),
					retry.DelayType(retry.FixedDelay),
					retry.LastErrorOnly(true),
					retry.OnRetry(func(n uint, err error) {
						slog.Default().Debug("the workout log API is not ready",
							slog.String("apiURL", cfg.API.BaseURL),
							slog.Uint64("attempt", uint64(n+1)),
							slog.Any("error", err),
						)
					}),
				); err != nil {
					return fmt.Errorf("the workout log API at %s is not healthy: %w", cfg.API.BaseURL, err)
				}
				return workout.WriteYAML(cmd.OutOrStdout(), health)
			})
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 0, "Keep polling until the API answers or this duration elapses")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Delay between polls with --wait")
	return cmd
}
