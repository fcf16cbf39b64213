package statistics

import (
	"fmt"
	"sort"

	"github.com/at-ishikawa/workoutlog/internal/workout"
)

// WeeklyStatistics holds statistics for one ISO week
type WeeklyStatistics struct {
	Period        string // "2025-W03"
	Sessions      int
	WorkoutTypes  map[workout.WorkoutType]int
	DistanceKm    float64
	RunMinutes    float64
	PainReports   int
	AnalyzedCount int
}

// AggregateStatistics holds totals across all weeks
type AggregateStatistics struct {
	Sessions       int
	WorkoutTypes   map[workout.WorkoutType]int
	AverageFatigue *float64 // nil when no log recorded a fatigue level
	DistanceKm     float64
	RunMinutes     float64
	PainReports    int
	AnalyzedCount  int
}

// StatisticsResult holds both per-week and aggregate statistics
type StatisticsResult struct {
	Periods   []WeeklyStatistics
	Aggregate AggregateStatistics
}

// TypeCount is a workout type with its session count
type TypeCount struct {
	Type  workout.WorkoutType
	Count int
}

// CalculateStatistics calculates training statistics from the given logs.
// Logs without a date are skipped.
func CalculateStatistics(logs []workout.WorkoutLog) StatisticsResult {
	weeks := make(map[string]*WeeklyStatistics)
	aggregate := AggregateStatistics{
		WorkoutTypes: make(map[workout.WorkoutType]int),
	}

	var fatigueTotal, fatigueCount int
	for _, log := range logs {
		if log.Date.IsZero() {
			continue
		}

		year, week := log.Date.Time().ISOWeek()
		period := fmt.Sprintf("%d-W%02d", year, week)
		data := ensurePeriodExists(weeks, period)

		data.Sessions++
		data.WorkoutTypes[log.WorkoutType]++
		aggregate.Sessions++
		aggregate.WorkoutTypes[log.WorkoutType]++

		if log.FatigueLevel != nil {
			fatigueTotal += *log.FatigueLevel
			fatigueCount++
		}
		if log.RunningData != nil {
			if log.RunningData.DistanceKm != nil {
				data.DistanceKm += *log.RunningData.DistanceKm
				aggregate.DistanceKm += *log.RunningData.DistanceKm
			}
			if log.RunningData.DurationMinutes != nil {
				data.RunMinutes += *log.RunningData.DurationMinutes
				aggregate.RunMinutes += *log.RunningData.DurationMinutes
			}
		}
		if hasPain(log.PainOrTightness) {
			data.PainReports++
			aggregate.PainReports++
		}
		if log.AIAnalysis != nil {
			data.AnalyzedCount++
			aggregate.AnalyzedCount++
		}
	}

	if fatigueCount > 0 {
		average := float64(fatigueTotal) / float64(fatigueCount)
		aggregate.AverageFatigue = &average
	}

	periods := make([]WeeklyStatistics, 0, len(weeks))
	for _, data := range weeks {
		periods = append(periods, *data)
	}
	// Newest first
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return StatisticsResult{
		Periods:   periods,
		Aggregate: aggregate,
	}
}

// SortedTypeCounts returns the counts ordered by workout type name
func SortedTypeCounts(counts map[workout.WorkoutType]int) []TypeCount {
	result := make([]TypeCount, 0, len(counts))
	for workoutType, count := range counts {
		result = append(result, TypeCount{Type: workoutType, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Type < result[j].Type
	})
	return result
}

func ensurePeriodExists(weeks map[string]*WeeklyStatistics, period string) *WeeklyStatistics {
	if weeks[period] == nil {
		weeks[period] = &WeeklyStatistics{
			Period:       period,
			WorkoutTypes: make(map[workout.WorkoutType]int),
		}
	}
	return weeks[period]
}

func hasPain(pain *workout.PainOrTightness) bool {
	if pain == nil {
		return false
	}
	return len(pain.BodyAreas) > 0 || pain.Description != "" || pain.Severity != ""
}
