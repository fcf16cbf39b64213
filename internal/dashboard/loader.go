package dashboard

import (
	"context"
	"log/slog"

	"github.com/at-ishikawa/workoutlog/internal/join"
	"github.com/at-ishikawa/workoutlog/internal/metrics"
	"github.com/at-ishikawa/workoutlog/internal/statistics"
	"github.com/at-ishikawa/workoutlog/internal/workout"
)

// Fetcher is the part of api.Client the dashboard reads from
type Fetcher interface {
	GetLogs(ctx context.Context, days int) ([]workout.WorkoutLog, error)
	GetSummaryStats(ctx context.Context) (workout.SummaryStats, error)
}

type Loader struct {
	fetcher    Fetcher
	apiURL     string
	recentDays int
	logPath    string
	metrics    *metrics.Manager
}

func NewLoader(fetcher Fetcher, apiURL string, recentDays int, logPath string, manager *metrics.Manager) *Loader {
	return &Loader{
		fetcher:    fetcher,
		apiURL:     apiURL,
		recentDays: recentDays,
		logPath:    logPath,
		metrics:    manager,
	}
}

// Initial returns the view shown before the first load completes
func (loader *Loader) Initial() View {
	return loader.newView(StateLoading)
}

// Load fetches recent logs and summary stats concurrently. Both must succeed
// for a ready view; otherwise the first failure becomes the error message.
func (loader *Loader) Load(ctx context.Context) View {
	logs, stats, err := join.All2(ctx,
		func(ctx context.Context) ([]workout.WorkoutLog, error) {
			return loader.fetcher.GetLogs(ctx, loader.recentDays)
		},
		loader.fetcher.GetSummaryStats,
	)
	if err != nil {
		slog.Default().Warn("failed to load the dashboard",
			slog.String("apiURL", loader.apiURL),
			slog.Any("error", err),
		)
		view := loader.newView(StateError)
		view.ErrorMessage = err.Error()
		loader.metrics.ObserveDashboardLoad(view.State.String())
		return view
	}

	view := loader.newView(StateReady)
	view.Logs = logs
	view.Stats = stats
	view.Recent = statistics.CalculateStatistics(logs).Aggregate
	loader.metrics.ObserveDashboardLoad(view.State.String())
	return view
}

func (loader *Loader) newView(state State) View {
	return View{
		State:      state,
		APIURL:     loader.apiURL,
		LogPath:    loader.logPath,
		RecentDays: loader.recentDays,
	}
}
