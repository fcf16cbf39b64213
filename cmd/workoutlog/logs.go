package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/workoutlog/internal/api"
	"github.com/at-ishikawa/workoutlog/internal/api/httpclient"
	"github.com/at-ishikawa/workoutlog/internal/config"
	"github.com/at-ishikawa/workoutlog/internal/workout"
)

// WorkoutTypeFlag filters listed logs by workout type. Empty means every type.
type WorkoutTypeFlag workout.WorkoutType

// Set implements pflag.Value.
func (f *WorkoutTypeFlag) Set(v string) error {
	workoutType := workout.WorkoutType(v)
	if !slices.Contains(workout.AllWorkoutTypes, workoutType) {
		return fmt.Errorf("invalid value %q, valid values are %s", v, joinWorkoutTypes(workout.AllWorkoutTypes))
	}
	*f = WorkoutTypeFlag(workoutType)
	return nil
}

// String implements pflag.Value.
func (f *WorkoutTypeFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *WorkoutTypeFlag) Type() string {
	return "WorkoutType"
}

var (
	_ pflag.Value = (*WorkoutTypeFlag)(nil)
)

func joinWorkoutTypes(types []workout.WorkoutType) string {
	values := make([]string, 0, len(types))
	for _, workoutType := range types {
		values = append(values, string(workoutType))
	}
	return strings.Join(values, ", ")
}

func newLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Manage workout logs",
	}
	cmd.AddCommand(
		newLogsListCommand(),
		newLogsGetCommand(),
		newLogsDatesCommand(),
		newLogsCreateCommand(),
		newLogsUpdateCommand(),
		newLogsDeleteCommand(),
	)
	return cmd
}

func newLogsListCommand() *cobra.Command {
	var days int
	var start, end string
	var typeFlag WorkoutTypeFlag

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logs of the recent days or of a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (start == "") != (end == "") {
				return fmt.Errorf("--start and --end must be specified together")
			}
			if start != "" && cmd.Flags().Changed("days") {
				return fmt.Errorf("--days cannot be combined with --start and --end")
			}
			if days < 1 || days > 90 {
				return fmt.Errorf("--days must be between 1 and 90")
			}

			return withClient(func(_ *config.Config, client *httpclient.Client) error {
				var logs []workout.WorkoutLog
				if start != "" {
					startDate, err := workout.ParseDate(start)
					if err != nil {
						return fmt.Errorf("--start: %w", err)
					}
					endDate, err := workout.ParseDate(end)
					if err != nil {
						return fmt.Errorf("--end: %w", err)
					}
					if logs, err = client.GetLogsRange(cmd.Context(), startDate, endDate); err != nil {
						return fmt.Errorf("client.GetLogsRange() > %w", err)
					}
				} else {
					var err error
					if logs, err = client.GetLogs(cmd.Context(), days); err != nil {
						return fmt.Errorf("client.GetLogs() > %w", err)
					}
				}

				if typeFlag != "" {
					logs = slices.DeleteFunc(logs, func(log workout.WorkoutLog) bool {
						return log.WorkoutType != workout.WorkoutType(typeFlag)
					})
				}
				if len(logs) == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "No workout logs found.")
					return err
				}
				return workout.WriteYAML(cmd.OutOrStdout(), logs)
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", api.DefaultDays, "Number of days back from today, 1 to 90")
	cmd.Flags().StringVar(&start, "start", "", "First date of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last date of the range (YYYY-MM-DD)")
	cmd.Flags().Var(&typeFlag, "type", "Only show logs of this workout type. Options: "+joinWorkoutTypes(workout.AllWorkoutTypes))
	return cmd
}

func newLogsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <date>",
		Short: "Show the log of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := workout.ParseDate(args[0])
			if err != nil {
				return err
			}
			return withClient(func(_ *config.Config, client *httpclient.Client) error {
				log, err := client.GetLog(cmd.Context(), date)
				if err != nil {
					return fmt.Errorf("client.GetLog() > %w", err)
				}
				return workout.WriteYAML(cmd.OutOrStdout(), log)
			})
		},
	}
}

func newLogsDatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List every date that has a log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(_ *config.Config, client *httpclient.Client) error {
				dates, err := client.GetLogDates(cmd.Context())
				if err != nil {
					return fmt.Errorf("client.GetLogDates() > %w", err)
				}
				for _, date := range dates {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), date); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newLogsCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a log from a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(file, workout.Date{})
			if err != nil {
				return err
			}
			return withClient(func(_ *config.Config, client *httpclient.Client) error {
				log, err := client.CreateLog(cmd.Context(), payload)
				if err != nil {
					return fmt.Errorf("client.CreateLog() > %w", err)
				}
				return workout.WriteYAML(cmd.OutOrStdout(), log)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Log file to create")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newLogsUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update <date>",
		Short: "Replace the log of a date with a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := workout.ParseDate(args[0])
			if err != nil {
				return err
			}
			payload, err := readPayload(file, date)
			if err != nil {
				return err
			}
			return withClient(func(_ *config.Config, client *httpclient.Client) error {
				log, err := client.UpdateLog(cmd.Context(), date, payload)
				if err != nil {
					return fmt.Errorf("client.UpdateLog() > %w", err)
				}
				return workout.WriteYAML(cmd.OutOrStdout(), log)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Log file with the new content")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newLogsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <date>",
		Short: "Delete the log of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := workout.ParseDate(args[0])
			if err != nil {
				return err
			}
			return withClient(func(_ *config.Config, client *httpclient.Client) error {
				if err := client.DeleteLog(cmd.Context(), date); err != nil {
					return fmt.Errorf("client.DeleteLog() > %w", err)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted the log of %s\n", date)
				return err
			})
		},
	}
}

// readPayload reads a log file and validates it before anything is sent.
// A file without a date takes defaultDate.
func readPayload(file string, defaultDate workout.Date) (workout.WorkoutLogCreate, error) {
	payload, err := workout.ReadLogFile(file)
	if err != nil {
		return workout.WorkoutLogCreate{}, fmt.Errorf("workout.ReadLogFile() > %w", err)
	}
	if payload.Date.IsZero() {
		payload.Date = defaultDate
	}
	validator, err := workout.NewValidator()
	if err != nil {
		return workout.WorkoutLogCreate{}, fmt.Errorf("workout.NewValidator() > %w", err)
	}
	if err := validator.Struct(payload); err != nil {
		return workout.WorkoutLogCreate{}, fmt.Errorf("invalid log file %s: %w", file, err)
	}
	return payload, nil
}
