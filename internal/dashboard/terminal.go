package dashboard

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	insightColor = color.New(color.FgBlue)
	mutedColor   = color.New(color.FgHiBlack)
)

// WriteTerminal renders the view as colored text
func WriteTerminal(w io.Writer, view View) error {
	tw := &terminalWriter{w: w}

	switch view.State {
	case StateLoading:
		tw.printf(mutedColor, "Loading...\n")
	case StateError:
		tw.printf(errorColor, "Error: %s\n", view.ErrorMessage)
		tw.printf(nil, "Make sure the backend is running at %s\n", view.APIURL)
	case StateReady:
		writeReadyTerminal(tw, view)
	}
	return tw.err
}

func writeReadyTerminal(tw *terminalWriter, view View) {
	tw.printf(headingColor, "Workout Dashboard\n\n")

	tw.printf(labelColor, "Total Workouts: ")
	tw.printf(nil, "%d\n", view.Stats.TotalLogs)
	tw.printf(labelColor, "Date Range: ")
	tw.printf(nil, "%s\n", view.DateRangeText())
	tw.printf(labelColor, "Workout Types:\n")
	for _, typeCount := range view.TypeCounts() {
		tw.printf(nil, "  %s: %d\n", typeCount.Type, typeCount.Count)
	}

	tw.printf(headingColor, "\nLast %d Days\n", view.RecentDays)
	tw.printf(nil, "  Sessions: %d, Average fatigue: %s, Distance: %.1f km, Running: %.0f min, Pain reports: %d, Analyzed: %d\n",
		view.Recent.Sessions,
		view.AverageFatigueText(),
		view.Recent.DistanceKm,
		view.Recent.RunMinutes,
		view.Recent.PainReports,
		view.Recent.AnalyzedCount,
	)

	tw.printf(headingColor, "\nRecent Workouts\n")
	if len(view.Logs) == 0 {
		tw.printf(nil, "No workout logs yet.\n")
		tw.printf(mutedColor, "Create your first log: %s\n", view.LogPath)
		return
	}
	for _, log := range view.Logs {
		tw.printf(labelColor, "\n%s ", log.Date)
		tw.printf(nil, "%s", log.WorkoutType)
		if fatigue := log.FatigueScore(); fatigue != "" {
			tw.printf(mutedColor, "  Fatigue: %s", fatigue)
		}
		tw.printf(nil, "\n")
		if log.FreeTextReflection != "" {
			tw.printf(nil, "  %s\n", log.FreeTextReflection)
		}
		if insight := log.Insight(); insight != "" {
			tw.printf(insightColor, "  AI Insight: %s\n", insight)
		}
	}
}

// terminalWriter keeps the first write error so callers check it once
type terminalWriter struct {
	w   io.Writer
	err error
}

func (tw *terminalWriter) printf(c *color.Color, format string, args ...interface{}) {
	if tw.err != nil {
		return
	}
	if c == nil {
		_, tw.err = fmt.Fprintf(tw.w, format, args...)
		return
	}
	_, tw.err = c.Fprintf(tw.w, format, args...)
}
