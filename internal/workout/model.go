// Package workout defines the records exchanged with the workout log API.
package workout

import "strconv"

type WorkoutType string

const (
	WorkoutTypeStrength WorkoutType = "strength"
	WorkoutTypeRun      WorkoutType = "run"
	WorkoutTypeRecovery WorkoutType = "recovery"
)

var AllWorkoutTypes = []WorkoutType{WorkoutTypeStrength, WorkoutTypeRun, WorkoutTypeRecovery}

type PerceivedEffort string

const (
	PerceivedEffortEasy     PerceivedEffort = "easy"
	PerceivedEffortModerate PerceivedEffort = "moderate"
	PerceivedEffortHard     PerceivedEffort = "hard"
)

var AllPerceivedEfforts = []PerceivedEffort{PerceivedEffortEasy, PerceivedEffortModerate, PerceivedEffortHard}

type PainSeverity string

const (
	PainSeverityMild     PainSeverity = "mild"
	PainSeverityModerate PainSeverity = "moderate"
	PainSeveritySevere   PainSeverity = "severe"
)

var AllPainSeverities = []PainSeverity{PainSeverityMild, PainSeverityModerate, PainSeveritySevere}

// Exercise is a single movement within a strength or recovery session
type Exercise struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	Sets  *int   `json:"sets,omitempty" yaml:"sets,omitempty"`
	Reps  *int   `json:"reps,omitempty" yaml:"reps,omitempty"`
	Load  string `json:"load,omitempty" yaml:"load,omitempty"`
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type RunningData struct {
	DurationMinutes *float64 `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty" yaml:"distance_km,omitempty"`
	PaceMinPerKm    *float64 `json:"pace_min_per_km,omitempty" yaml:"pace_min_per_km,omitempty"`
	Route           string   `json:"route,omitempty" yaml:"route,omitempty"`
}

type PainOrTightness struct {
	BodyAreas   []string     `json:"body_areas,omitempty" yaml:"body_areas,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Severity    PainSeverity `json:"severity,omitempty" yaml:"severity,omitempty" validate:"omitempty,oneof=mild moderate severe"`
}

// MachineContext holds the structured part of an AI analysis
type MachineContext struct {
	TrainingPhase    string   `json:"training_phase,omitempty" yaml:"training_phase,omitempty"`
	OverallFatigue   string   `json:"overall_fatigue,omitempty" yaml:"overall_fatigue,omitempty"`
	InjuryRisk       string   `json:"injury_risk,omitempty" yaml:"injury_risk,omitempty"`
	ProblemAreas     []string `json:"problem_areas,omitempty" yaml:"problem_areas,omitempty"`
	MovementQuality  string   `json:"movement_quality,omitempty" yaml:"movement_quality,omitempty"`
	RecommendedFocus []string `json:"recommended_focus,omitempty" yaml:"recommended_focus,omitempty"`
	LoadAdjustment   string   `json:"load_adjustment,omitempty" yaml:"load_adjustment,omitempty"`
	ConfidenceScore  *float64 `json:"confidence_score,omitempty" yaml:"confidence_score,omitempty" validate:"omitempty,min=0,max=1"`
}

type AIAnalysis struct {
	HumanInsight   string         `json:"human_insight" yaml:"human_insight" validate:"required"`
	MachineContext MachineContext `json:"machine_context" yaml:"machine_context"`
	AnalyzedAt     Timestamp      `json:"analyzed_at" yaml:"analyzed_at" validate:"required"`
}

type Metadata struct {
	CreatedAt Timestamp `json:"created_at" yaml:"created_at" validate:"required"`
	UpdatedAt Timestamp `json:"updated_at" yaml:"updated_at" validate:"required"`
}

// WorkoutLog is a stored daily log. Date is the natural key.
type WorkoutLog struct {
	Date               Date             `json:"date" yaml:"date" validate:"required"`
	WorkoutType        WorkoutType      `json:"workout_type" yaml:"workout_type" validate:"required,oneof=strength run recovery"`
	Exercises          []Exercise       `json:"exercises,omitempty" yaml:"exercises,omitempty" validate:"omitempty,dive"`
	RunningData        *RunningData     `json:"running_data,omitempty" yaml:"running_data,omitempty"`
	PerceivedEffort    PerceivedEffort  `json:"perceived_effort,omitempty" yaml:"perceived_effort,omitempty" validate:"omitempty,oneof=easy moderate hard"`
	FatigueLevel       *int             `json:"fatigue_level,omitempty" yaml:"fatigue_level,omitempty"`
	PainOrTightness    *PainOrTightness `json:"pain_or_tightness,omitempty" yaml:"pain_or_tightness,omitempty"`
	FreeTextReflection string           `json:"free_text_reflection,omitempty" yaml:"free_text_reflection,omitempty"`
	AIAnalysis         *AIAnalysis      `json:"ai_analysis,omitempty" yaml:"ai_analysis,omitempty"`
	Metadata           Metadata         `json:"metadata" yaml:"metadata"`
}

// WorkoutLogCreate is the payload accepted by create and update.
// The server owns metadata and analysis, so they are not part of it.
type WorkoutLogCreate struct {
	Date               Date             `json:"date" yaml:"date" validate:"required"`
	WorkoutType        WorkoutType      `json:"workout_type" yaml:"workout_type" validate:"required,oneof=strength run recovery"`
	Exercises          []Exercise       `json:"exercises,omitempty" yaml:"exercises,omitempty" validate:"omitempty,dive"`
	RunningData        *RunningData     `json:"running_data,omitempty" yaml:"running_data,omitempty"`
	PerceivedEffort    PerceivedEffort  `json:"perceived_effort,omitempty" yaml:"perceived_effort,omitempty" validate:"omitempty,oneof=easy moderate hard"`
	FatigueLevel       *int             `json:"fatigue_level,omitempty" yaml:"fatigue_level,omitempty"`
	PainOrTightness    *PainOrTightness `json:"pain_or_tightness,omitempty" yaml:"pain_or_tightness,omitempty"`
	FreeTextReflection string           `json:"free_text_reflection,omitempty" yaml:"free_text_reflection,omitempty"`
}

// ToCreate returns the editable part of the log
func (log WorkoutLog) ToCreate() WorkoutLogCreate {
	return WorkoutLogCreate{
		Date:               log.Date,
		WorkoutType:        log.WorkoutType,
		Exercises:          log.Exercises,
		RunningData:        log.RunningData,
		PerceivedEffort:    log.PerceivedEffort,
		FatigueLevel:       log.FatigueLevel,
		PainOrTightness:    log.PainOrTightness,
		FreeTextReflection: log.FreeTextReflection,
	}
}

// FatigueScore formats the fatigue level as "N/10", or "" when it was not recorded
func (log WorkoutLog) FatigueScore() string {
	if log.FatigueLevel == nil {
		return ""
	}
	return strconv.Itoa(*log.FatigueLevel) + "/10"
}

// Insight returns the human readable AI insight, or "" when the log was not analyzed
func (log WorkoutLog) Insight() string {
	if log.AIAnalysis == nil {
		return ""
	}
	return log.AIAnalysis.HumanInsight
}

type DateRange struct {
	First Date `json:"first" yaml:"first" validate:"required"`
	Last  Date `json:"last" yaml:"last" validate:"required"`
}

// SummaryStats is the aggregate over all stored logs.
// DateRange is nil when no logs exist.
type SummaryStats struct {
	TotalLogs    int                 `json:"total_logs" yaml:"total_logs" validate:"min=0"`
	DateRange    *DateRange          `json:"date_range" yaml:"date_range"`
	WorkoutTypes map[WorkoutType]int `json:"workout_types" yaml:"workout_types" validate:"omitempty,dive,keys,oneof=strength run recovery,endkeys,min=0"`
}

type HealthStatus struct {
	Status  string `json:"status" yaml:"status" validate:"required"`
	Service string `json:"service,omitempty" yaml:"service,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}
