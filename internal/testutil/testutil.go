// Package testutil provides shared test helpers for config files, log fixtures and a fake workout log API.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/workoutlog/internal/workout"
)

// SetupTestConfig creates a minimal config file pointing at baseURL.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()

	configContent := fmt.Sprintf(`api:
  base_url: %s
  timeout: 5s
dashboard:
  recent_days: 7
  history_days: 7
  address: 127.0.0.1:0
  log_path: /log
`, baseURL)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteLogFile writes a log payload as YAML and returns its path
func WriteLogFile(t *testing.T, dir, name string, log workout.WorkoutLogCreate) string {
	t.Helper()

	logPath := filepath.Join(dir, name)
	file, err := os.Create(logPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, file.Close())
	}()
	require.NoError(t, workout.WriteYAML(file, log))
	return logPath
}

// LogOption configures optional fields of a log fixture.
type LogOption func(*workout.WorkoutLog)

// WithFatigue sets the fatigue level of the log fixture.
func WithFatigue(level int) LogOption {
	return func(log *workout.WorkoutLog) {
		log.FatigueLevel = &level
	}
}

// WithReflection sets the free text reflection of the log fixture.
func WithReflection(reflection string) LogOption {
	return func(log *workout.WorkoutLog) {
		log.FreeTextReflection = reflection
	}
}

// WithInsight attaches an AI analysis with the given insight.
func WithInsight(insight string) LogOption {
	return func(log *workout.WorkoutLog) {
		log.AIAnalysis = &workout.AIAnalysis{
			HumanInsight: insight,
			AnalyzedAt:   log.Metadata.UpdatedAt,
		}
	}
}

// NewRunLog creates a 5 km run log fixture on date
func NewRunLog(date workout.Date, opts ...LogOption) workout.WorkoutLog {
	duration := 30.0
	distance := 5.0
	log := newLog(date, workout.WorkoutTypeRun)
	log.RunningData = &workout.RunningData{
		DurationMinutes: &duration,
		DistanceKm:      &distance,
	}
	for _, opt := range opts {
		opt(&log)
	}
	return log
}

// NewStrengthLog creates a squat session log fixture on date
func NewStrengthLog(date workout.Date, opts ...LogOption) workout.WorkoutLog {
	sets := 3
	reps := 5
	log := newLog(date, workout.WorkoutTypeStrength)
	log.Exercises = []workout.Exercise{
		{Name: "Squat", Sets: &sets, Reps: &reps, Load: "100kg"},
	}
	for _, opt := range opts {
		opt(&log)
	}
	return log
}

func newLog(date workout.Date, workoutType workout.WorkoutType) workout.WorkoutLog {
	createdAt := workout.NewTimestamp(date.Time().Add(10 * time.Hour))
	return workout.WorkoutLog{
		Date:        date,
		WorkoutType: workoutType,
		Metadata: workout.Metadata{
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
	}
}
