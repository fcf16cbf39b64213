package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/workoutlog/internal/api/httpclient"
	"github.com/at-ishikawa/workoutlog/internal/config"
	"github.com/at-ishikawa/workoutlog/internal/join"
	"github.com/at-ishikawa/workoutlog/internal/statistics"
	"github.com/at-ishikawa/workoutlog/internal/workout"
)

func newStatsCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the summary of every log and weekly statistics of the recent days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 || days > 90 {
				return fmt.Errorf("--days must be between 1 and 90")
			}

			return withClient(func(_ *config.Config, client *httpclient.Client) error {
				summary, logs, err := join.All2(cmd.Context(),
					client.GetSummaryStats,
					func(ctx context.Context) ([]workout.WorkoutLog, error) {
						return client.GetLogs(ctx, days)
					},
				)
				if err != nil {
					return err
				}

				output := cmd.OutOrStdout()
				if err := workout.WriteYAML(output, summary); err != nil {
					return err
				}
				return writeWeeklyReport(output, days, statistics.CalculateStatistics(logs))
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 28, "Number of recent days in the weekly statistics, 1 to 90")
	return cmd
}

func writeWeeklyReport(w io.Writer, days int, result statistics.StatisticsResult) error {
	if len(result.Periods) == 0 {
		_, err := fmt.Fprintf(w, "\nNo workout logs in the last %d days.\n", days)
		return err
	}

	const row = "%-10s  %-8s  %-13s  %-11s  %-4s  %-8s\n"
	lines := []string{
		fmt.Sprintf("\nWeekly Statistics (last %d days)\n", days),
		"================================\n",
		fmt.Sprintf(row, "Period", "Sessions", "Distance (km)", "Run (min)", "Pain", "Analyzed"),
		fmt.Sprintf(row, "------", "--------", "-------------", "---------", "----", "--------"),
	}
	for _, s := range result.Periods {
		lines = append(lines, fmt.Sprintf(row,
			s.Period,
			fmt.Sprint(s.Sessions),
			fmt.Sprintf("%.1f", s.DistanceKm),
			fmt.Sprintf("%.0f", s.RunMinutes),
			fmt.Sprint(s.PainReports),
			fmt.Sprint(s.AnalyzedCount),
		))
	}

	aggregate := result.Aggregate
	lines = append(lines, "\n", fmt.Sprintf(row,
		"Totals:",
		fmt.Sprint(aggregate.Sessions),
		fmt.Sprintf("%.1f", aggregate.DistanceKm),
		fmt.Sprintf("%.0f", aggregate.RunMinutes),
		fmt.Sprint(aggregate.PainReports),
		fmt.Sprint(aggregate.AnalyzedCount),
	))
	if aggregate.AverageFatigue != nil {
		lines = append(lines, fmt.Sprintf("Average fatigue: %.1f/10\n", *aggregate.AverageFatigue))
	}
	for _, typeCount := range statistics.SortedTypeCounts(aggregate.WorkoutTypes) {
		lines = append(lines, fmt.Sprintf("%s: %d\n", typeCount.Type, typeCount.Count))
	}

	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
