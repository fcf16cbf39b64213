package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/workoutlog/internal/api/httpclient"
	"github.com/at-ishikawa/workoutlog/internal/config"
	"github.com/at-ishikawa/workoutlog/internal/workout"
)

func newAnalyzeCommand() *cobra.Command {
	var historyDays int

	cmd := &cobra.Command{
		Use:   "analyze <date>",
		Short: "Request an AI analysis of the log of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := workout.ParseDate(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("history-days") && (historyDays < 1 || historyDays > 30) {
				return fmt.Errorf("--history-days must be between 1 and 30")
			}

			return withClient(func(cfg *config.Config, client *httpclient.Client) error {
				days := cfg.Dashboard.HistoryDays
				if cmd.Flags().Changed("history-days") {
					days = historyDays
				}
				log, err := client.AnalyzeLog(cmd.Context(), date, days)
				if err != nil {
					return fmt.Errorf("client.AnalyzeLog() > %w", err)
				}
				return workout.WriteYAML(cmd.OutOrStdout(), log)
			})
		},
	}

	cmd.Flags().IntVar(&historyDays, "history-days", 0, "Days of earlier logs given as context, 1 to 30. Defaults to dashboard.history_days")
	return cmd
}
