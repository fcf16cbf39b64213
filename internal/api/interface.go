package api

import (
	"context"

	"github.com/at-ishikawa/workoutlog/internal/workout"
)

//go:generate mockgen -source=interface.go -destination=../mocks/api/mock_client.go -package=mock_api

// Client interface defines one method per endpoint of the workout log API
type Client interface {
	HealthCheck(ctx context.Context) (workout.HealthStatus, error)
	GetLogs(ctx context.Context, days int) ([]workout.WorkoutLog, error)
	GetLogsRange(ctx context.Context, start, end workout.Date) ([]workout.WorkoutLog, error)
	GetLog(ctx context.Context, date workout.Date) (workout.WorkoutLog, error)
	CreateLog(ctx context.Context, log workout.WorkoutLogCreate) (workout.WorkoutLog, error)
	UpdateLog(ctx context.Context, date workout.Date, log workout.WorkoutLogCreate) (workout.WorkoutLog, error)
	DeleteLog(ctx context.Context, date workout.Date) error
	AnalyzeLog(ctx context.Context, date workout.Date, historyDays int) (workout.WorkoutLog, error)
	GetSummaryStats(ctx context.Context) (workout.SummaryStats, error)
	GetLogDates(ctx context.Context) ([]workout.Date, error)
}

const (
	DefaultBaseURL     = "http://localhost:8000"
	DefaultDays        = 7
	DefaultHistoryDays = 7
)
