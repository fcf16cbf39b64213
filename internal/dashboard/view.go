// Package dashboard loads and renders the workout dashboard.
package dashboard

import (
	"fmt"
	"net/url"

	"github.com/at-ishikawa/workoutlog/internal/statistics"
	"github.com/at-ishikawa/workoutlog/internal/workout"
)

type State int

const (
	StateLoading State = iota
	StateError
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// View is everything a renderer needs. Logs and Stats are only set in
// StateReady and ErrorMessage only in StateError.
type View struct {
	State        State
	ErrorMessage string
	APIURL       string
	LogPath      string
	RecentDays   int

	Logs   []workout.WorkoutLog
	Stats  workout.SummaryStats
	Recent statistics.AggregateStatistics
}

func (v View) Loading() bool {
	return v.State == StateLoading
}

func (v View) Failed() bool {
	return v.State == StateError
}

func (v View) Ready() bool {
	return v.State == StateReady
}

// DateRangeText returns "first to last", or "No logs yet" without a range
func (v View) DateRangeText() string {
	if v.Stats.DateRange == nil {
		return "No logs yet"
	}
	return fmt.Sprintf("%s to %s", v.Stats.DateRange.First, v.Stats.DateRange.Last)
}

// TypeCounts returns the summary counts sorted by workout type
func (v View) TypeCounts() []statistics.TypeCount {
	return statistics.SortedTypeCounts(v.Stats.WorkoutTypes)
}

func (v View) AverageFatigueText() string {
	if v.Recent.AverageFatigue == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f/10", *v.Recent.AverageFatigue)
}

// LogURL links to the log view of a single date
func (v View) LogURL(date workout.Date) string {
	query := url.Values{}
	query.Set("date", date.String())
	return v.LogPath + "?" + query.Encode()
}
