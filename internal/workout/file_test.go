package workout

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLogFile(t *testing.T) {
	distance := 5.2
	fatigue := 4
	sets := 3
	tests := []struct {
		name              string
		content           string
		want              WorkoutLogCreate
		wantErrorContains string
	}{
		{
			name: "yaml run log",
			content: `date: 2025-01-15
workout_type: run
running_data:
  distance_km: 5.2
  route: river loop
perceived_effort: easy
fatigue_level: 4
free_text_reflection: Felt light.
`,
			want: WorkoutLogCreate{
				Date:               NewDate(2025, time.January, 15),
				WorkoutType:        WorkoutTypeRun,
				RunningData:        &RunningData{DistanceKm: &distance, Route: "river loop"},
				PerceivedEffort:    PerceivedEffortEasy,
				FatigueLevel:       &fatigue,
				FreeTextReflection: "Felt light.",
			},
		},
		{
			name:    "json strength log",
			content: `{"date": "2025-01-16", "workout_type": "strength", "exercises": [{"name": "Deadlift", "sets": 3}]}`,
			want: WorkoutLogCreate{
				Date:        NewDate(2025, time.January, 16),
				WorkoutType: WorkoutTypeStrength,
				Exercises:   []Exercise{{Name: "Deadlift", Sets: &sets}},
			},
		},
		{
			name:              "unknown field",
			content:           "date: 2025-01-15\nworkout_type: run\nmood: great\n",
			wantErrorContains: "field mood not found",
		},
		{
			name:              "invalid date",
			content:           "date: 15/01/2025\nworkout_type: run\n",
			wantErrorContains: "expected YYYY-MM-DD",
		},
		{
			name:              "empty file",
			content:           "",
			wantErrorContains: "log file is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "log.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got, err := ReadLogFile(path)
			if tt.wantErrorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLogFile_NotFound(t *testing.T) {
	_, err := ReadLogFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, WorkoutLogCreate{
		Date:        NewDate(2025, time.January, 15),
		WorkoutType: WorkoutTypeRecovery,
	}))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "date: \"2025-01-15\"\n"), output)
	assert.Contains(t, output, "workout_type: recovery")
	assert.NotContains(t, output, "exercises")

	decoded, err := DecodeLog(&buf)
	require.NoError(t, err)
	assert.Equal(t, WorkoutTypeRecovery, decoded.WorkoutType)
}
