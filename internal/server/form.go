package server

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/at-ishikawa/workoutlog/internal/workout"
)

// LogForm holds the raw values of the log form so they can be rendered back
type LogForm struct {
	Date               string
	WorkoutType        string
	PerceivedEffort    string
	FatigueLevel       string
	Exercises          string
	DurationMinutes    string
	DistanceKm         string
	PaceMinPerKm       string
	Route              string
	PainBodyAreas      string
	PainSeverity       string
	PainDescription    string
	FreeTextReflection string
}

func readLogForm(r *http.Request) LogForm {
	return LogForm{
		Date:               strings.TrimSpace(r.PostFormValue("date")),
		WorkoutType:        strings.TrimSpace(r.PostFormValue("workout_type")),
		PerceivedEffort:    strings.TrimSpace(r.PostFormValue("perceived_effort")),
		FatigueLevel:       strings.TrimSpace(r.PostFormValue("fatigue_level")),
		Exercises:          r.PostFormValue("exercises"),
		DurationMinutes:    strings.TrimSpace(r.PostFormValue("duration_minutes")),
		DistanceKm:         strings.TrimSpace(r.PostFormValue("distance_km")),
		PaceMinPerKm:       strings.TrimSpace(r.PostFormValue("pace_min_per_km")),
		Route:              strings.TrimSpace(r.PostFormValue("route")),
		PainBodyAreas:      strings.TrimSpace(r.PostFormValue("pain_body_areas")),
		PainSeverity:       strings.TrimSpace(r.PostFormValue("pain_severity")),
		PainDescription:    strings.TrimSpace(r.PostFormValue("pain_description")),
		FreeTextReflection: strings.TrimSpace(r.PostFormValue("free_text_reflection")),
	}
}

// newLogForm fills the form with a stored log, or with date and the default type when log is nil
func newLogForm(date workout.Date, log *workout.WorkoutLog) LogForm {
	if log == nil {
		return LogForm{
			Date:        date.String(),
			WorkoutType: string(workout.WorkoutTypeStrength),
		}
	}

	form := LogForm{
		Date:               log.Date.String(),
		WorkoutType:        string(log.WorkoutType),
		PerceivedEffort:    string(log.PerceivedEffort),
		FreeTextReflection: log.FreeTextReflection,
	}
	if log.FatigueLevel != nil {
		form.FatigueLevel = strconv.Itoa(*log.FatigueLevel)
	}

	form.Exercises = formatExercises(log.Exercises)

	if running := log.RunningData; running != nil {
		form.DurationMinutes = formatOptionalFloat(running.DurationMinutes)
		form.DistanceKm = formatOptionalFloat(running.DistanceKm)
		form.PaceMinPerKm = formatOptionalFloat(running.PaceMinPerKm)
		form.Route = running.Route
	}
	if pain := log.PainOrTightness; pain != nil {
		form.PainBodyAreas = strings.Join(pain.BodyAreas, ", ")
		form.PainSeverity = string(pain.Severity)
		form.PainDescription = pain.Description
	}
	return form
}

// Payload converts the form into a create or update payload
func (form LogForm) Payload() (workout.WorkoutLogCreate, error) {
	var payload workout.WorkoutLogCreate

	if form.Date == "" {
		return payload, fmt.Errorf("date is required")
	}
	date, err := workout.ParseDate(form.Date)
	if err != nil {
		return payload, err
	}
	payload.Date = date

	workoutType := workout.WorkoutType(form.WorkoutType)
	if !slices.Contains(workout.AllWorkoutTypes, workoutType) {
		return payload, fmt.Errorf("workout type must be one of %v", workout.AllWorkoutTypes)
	}
	payload.WorkoutType = workoutType

	if form.PerceivedEffort != "" {
		effort := workout.PerceivedEffort(form.PerceivedEffort)
		if !slices.Contains(workout.AllPerceivedEfforts, effort) {
			return payload, fmt.Errorf("perceived effort must be one of %v", workout.AllPerceivedEfforts)
		}
		payload.PerceivedEffort = effort
	}

	if form.FatigueLevel != "" {
		level, err := strconv.Atoi(form.FatigueLevel)
		if err != nil {
			return payload, fmt.Errorf("fatigue level must be a whole number: %q", form.FatigueLevel)
		}
		payload.FatigueLevel = &level
	}

	exercises, err := parseExercises(form.Exercises)
	if err != nil {
		return payload, err
	}
	payload.Exercises = exercises

	running, err := form.runningData()
	if err != nil {
		return payload, err
	}
	payload.RunningData = running

	pain, err := form.painOrTightness()
	if err != nil {
		return payload, err
	}
	payload.PainOrTightness = pain

	payload.FreeTextReflection = form.FreeTextReflection
	return payload, nil
}

const exerciseFields = 5

// formatExercises writes one CSV record per exercise as "name,sets,reps,load,notes".
// Trailing empty fields are left out.
func formatExercises(exercises []workout.Exercise) string {
	var b strings.Builder
	writer := csv.NewWriter(&b)
	for _, exercise := range exercises {
		record := []string{
			exercise.Name,
			formatOptionalInt(exercise.Sets),
			formatOptionalInt(exercise.Reps),
			exercise.Load,
			exercise.Notes,
		}
		for len(record) > 1 && record[len(record)-1] == "" {
			record = record[:len(record)-1]
		}
		// Writing to a strings.Builder cannot fail
		_ = writer.Write(record)
	}
	writer.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// parseExercises reads the records written by formatExercises.
// Whitespace around a field is not significant; quote a field to keep commas or line breaks.
func parseExercises(value string) ([]workout.Exercise, error) {
	reader := csv.NewReader(strings.NewReader(value))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var exercises []workout.Exercise
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("exercises: %w", err)
		}
		line, _ := reader.FieldPos(0)

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}
		if len(record) > exerciseFields {
			return nil, fmt.Errorf("exercise on line %d has more than %d fields", line, exerciseFields)
		}
		record = append(record, make([]string, exerciseFields-len(record))...)

		exercise := workout.Exercise{
			Name:  record[0],
			Load:  record[3],
			Notes: record[4],
		}
		if exercise.Name == "" {
			return nil, fmt.Errorf("exercise on line %d has no name", line)
		}
		if exercise.Sets, err = parseOptionalInt(record[1]); err != nil {
			return nil, fmt.Errorf("exercise on line %d: sets %w", line, err)
		}
		if exercise.Reps, err = parseOptionalInt(record[2]); err != nil {
			return nil, fmt.Errorf("exercise on line %d: reps %w", line, err)
		}
		exercises = append(exercises, exercise)
	}
	return exercises, nil
}

func (form LogForm) runningData() (*workout.RunningData, error) {
	if form.DurationMinutes == "" && form.DistanceKm == "" && form.PaceMinPerKm == "" && form.Route == "" {
		return nil, nil
	}

	var running workout.RunningData
	var err error
	if running.DurationMinutes, err = parseOptionalFloat(form.DurationMinutes); err != nil {
		return nil, fmt.Errorf("duration %w", err)
	}
	if running.DistanceKm, err = parseOptionalFloat(form.DistanceKm); err != nil {
		return nil, fmt.Errorf("distance %w", err)
	}
	if running.PaceMinPerKm, err = parseOptionalFloat(form.PaceMinPerKm); err != nil {
		return nil, fmt.Errorf("pace %w", err)
	}
	running.Route = form.Route
	return &running, nil
}

func (form LogForm) painOrTightness() (*workout.PainOrTightness, error) {
	if form.PainBodyAreas == "" && form.PainSeverity == "" && form.PainDescription == "" {
		return nil, nil
	}

	var pain workout.PainOrTightness
	for _, area := range strings.Split(form.PainBodyAreas, ",") {
		if area = strings.TrimSpace(area); area != "" {
			pain.BodyAreas = append(pain.BodyAreas, area)
		}
	}
	if form.PainSeverity != "" {
		severity := workout.PainSeverity(form.PainSeverity)
		if !slices.Contains(workout.AllPainSeverities, severity) {
			return nil, fmt.Errorf("pain severity must be one of %v", workout.AllPainSeverities)
		}
		pain.Severity = severity
	}
	pain.Description = form.PainDescription
	return &pain, nil
}

func parseOptionalInt(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return nil, fmt.Errorf("must be a non-negative whole number: %q", value)
	}
	return &parsed, nil
}

func parseOptionalFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 {
		return nil, fmt.Errorf("must be a non-negative number: %q", value)
	}
	return &parsed, nil
}

func formatOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
