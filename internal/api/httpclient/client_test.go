package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/workoutlog/internal/api"
	"github.com/at-ishikawa/workoutlog/internal/metrics"
	"github.com/at-ishikawa/workoutlog/internal/workout"
)

const runLogJSON = `{
	"date": "2025-01-15",
	"workout_type": "run",
	"running_data": {"duration_minutes": 30, "distance_km": 5.2},
	"fatigue_level": 4,
	"metadata": {"created_at": "2025-01-15T10:30:00.123456", "updated_at": "2025-01-15T10:30:00.123456"}
}`

const analyzedLogJSON = `{
	"date": "2025-01-15",
	"workout_type": "run",
	"ai_analysis": {
		"human_insight": "Easy pace, keep it up.",
		"machine_context": {"training_phase": "base", "confidence_score": 0.8},
		"analyzed_at": "2025-01-15T11:00:00"
	},
	"metadata": {"created_at": "2025-01-15T10:30:00", "updated_at": "2025-01-15T11:00:00"}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL + "/")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient("http://localhost:8000/", WithTimeout(time.Second), WithMetrics(metrics.NewTestManager()))
	require.NoError(t, err)
	defer func() {
		_ = client.Close()
	}()

	assert.Equal(t, "http://localhost:8000", client.BaseURL())
	assert.NotNil(t, client.metrics)
}

func TestClient_HealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    workout.HealthStatus
		wantErr error
	}{
		{
			name:   "healthy",
			status: http.StatusOK,
			body:   `{"status": "healthy", "service": "workout-log-api", "version": "1.0.0"}`,
			want: workout.HealthStatus{
				Status:  "healthy",
				Service: "workout-log-api",
				Version: "1.0.0",
			},
		},
		{
			name:    "missing status",
			status:  http.StatusOK,
			body:    `{"service": "workout-log-api"}`,
			wantErr: api.ErrMalformedResponse,
		},
		{
			name:    "server error",
			status:  http.StatusServiceUnavailable,
			body:    `{"detail": "Database unavailable"}`,
			wantErr: &api.Error{StatusCode: http.StatusServiceUnavailable, Message: "Database unavailable"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/", r.URL.Path)
				writeJSON(w, tt.status, tt.body)
			})

			got, err := client.HealthCheck(context.Background())
			if tt.wantErr != nil {
				var apiErr *api.Error
				if errors.As(tt.wantErr, &apiErr) {
					assert.Equal(t, tt.wantErr, err)
					return
				}
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "string detail",
			status:      http.StatusNotFound,
			body:        `{"detail": "Log not found for date 2025-01-15"}`,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Log not found for date 2025-01-15",
		},
		{
			name:        "validation detail list",
			status:      http.StatusUnprocessableEntity,
			body:        `{"detail": [{"loc": ["query", "days"], "msg": "Input should be greater than or equal to 1"}, {"loc": ["query", "days"], "msg": "Input should be a valid integer"}]}`,
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Input should be greater than or equal to 1; Input should be a valid integer",
		},
		{
			name:        "unparseable body",
			status:      http.StatusInternalServerError,
			body:        `Internal Server Error`,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "HTTP 500",
		},
		{
			name:        "body without detail",
			status:      http.StatusBadGateway,
			body:        `{"error": "upstream"}`,
			wantStatus:  http.StatusBadGateway,
			wantMessage: "HTTP 502",
		},
		{
			name:        "empty detail",
			status:      http.StatusConflict,
			body:        `{"detail": ""}`,
			wantStatus:  http.StatusConflict,
			wantMessage: "HTTP 409",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := client.GetLogs(context.Background(), api.DefaultDays)
			require.Error(t, err)

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.EqualError(t, err, tt.wantMessage)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	manager := metrics.NewTestManager()
	client, err := NewClient(baseURL, WithMetrics(manager))
	require.NoError(t, err)
	defer func() {
		_ = client.Close()
	}()

	_, err = client.GetLogDates(context.Background())
	require.Error(t, err)
	var apiErr *api.Error
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		manager.CounterAPIRequests.WithLabelValues("/logs/dates", http.MethodGet, metrics.StatusTransportError),
	))
}

func TestClient_GetLogs(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		body      string
		wantDays  string
		wantDates []string
		wantErr   error
	}{
		{
			name:      "default window",
			days:      api.DefaultDays,
			body:      "[" + runLogJSON + "]",
			wantDays:  "7",
			wantDates: []string{"2025-01-15"},
		},
		{
			name:      "empty list",
			days:      30,
			body:      `[]`,
			wantDays:  "30",
			wantDates: []string{},
		},
		{
			name:     "log without workout type",
			days:     7,
			body:     `[{"date": "2025-01-15", "metadata": {"created_at": "2025-01-15T10:30:00", "updated_at": "2025-01-15T10:30:00"}}]`,
			wantDays: "7",
			wantErr:  api.ErrMalformedResponse,
		},
		{
			name:     "not a list",
			days:     7,
			body:     `{"logs": []}`,
			wantDays: "7",
			wantErr:  api.ErrMalformedResponse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/logs", r.URL.Path)
				assert.Equal(t, tt.wantDays, r.URL.Query().Get("days"))
				writeJSON(w, http.StatusOK, tt.body)
			})

			got, err := client.GetLogs(context.Background(), tt.days)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)

			gotDates := make([]string, 0, len(got))
			for _, log := range got {
				gotDates = append(gotDates, log.Date.String())
			}
			assert.Equal(t, tt.wantDates, gotDates)
		})
	}
}

func TestClient_GetLogsRange(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/logs", r.URL.Path)
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-01-31", r.URL.Query().Get("end_date"))
		assert.False(t, r.URL.Query().Has("days"))
		writeJSON(w, http.StatusOK, "["+runLogJSON+"]")
	})

	got, err := client.GetLogsRange(context.Background(),
		workout.NewDate(2025, time.January, 1),
		workout.NewDate(2025, time.January, 31),
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, workout.WorkoutTypeRun, got[0].WorkoutType)
	require.NotNil(t, got[0].RunningData)
	assert.Equal(t, 5.2, *got[0].RunningData.DistanceKm)
}

func TestClient_GetLog(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantInsight string
		wantErr     bool
		wantNotFnd  bool
	}{
		{
			name:   "log without analysis",
			status: http.StatusOK,
			body:   runLogJSON,
		},
		{
			name:        "analyzed log",
			status:      http.StatusOK,
			body:        analyzedLogJSON,
			wantInsight: "Easy pace, keep it up.",
		},
		{
			name:       "not found",
			status:     http.StatusNotFound,
			body:       `{"detail": "Log not found for date 2025-01-15"}`,
			wantErr:    true,
			wantNotFnd: true,
		},
		{
			name:    "invalid date in body",
			status:  http.StatusOK,
			body:    `{"date": "15/01/2025", "workout_type": "run"}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/logs/2025-01-15", r.URL.Path)
				writeJSON(w, tt.status, tt.body)
			})

			got, err := client.GetLog(context.Background(), workout.NewDate(2025, time.January, 15))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantNotFnd, api.IsNotFound(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2025-01-15", got.Date.String())
			assert.Equal(t, tt.wantInsight, got.Insight())
			assert.Equal(t, time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC), got.Metadata.CreatedAt.Time().Truncate(time.Second))
		})
	}
}

func TestClient_CreateLog(t *testing.T) {
	fatigue := 4
	distance := 5.2
	duration := 30.0
	payload := workout.WorkoutLogCreate{
		Date:        workout.NewDate(2025, time.January, 15),
		WorkoutType: workout.WorkoutTypeRun,
		RunningData: &workout.RunningData{
			DurationMinutes: &duration,
			DistanceKm:      &distance,
		},
		FatigueLevel: &fatigue,
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/logs", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2025-01-15", body["date"])
		assert.Equal(t, "run", body["workout_type"])
		assert.Equal(t, float64(4), body["fatigue_level"])
		assert.NotContains(t, body, "metadata")
		assert.NotContains(t, body, "ai_analysis")

		writeJSON(w, http.StatusCreated, runLogJSON)
	})

	got, err := client.CreateLog(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "4/10", got.FatigueScore())
}

func TestClient_CreateLog_Conflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, `{"detail": "Log already exists for date 2025-01-15"}`)
	})

	_, err := client.CreateLog(context.Background(), workout.WorkoutLogCreate{
		Date:        workout.NewDate(2025, time.January, 15),
		WorkoutType: workout.WorkoutTypeRun,
	})
	assert.Equal(t, &api.Error{StatusCode: http.StatusConflict, Message: "Log already exists for date 2025-01-15"}, err)
}

func TestClient_UpdateLog(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/logs/2025-01-15", r.URL.Path)

		var body workout.WorkoutLogCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, workout.WorkoutTypeRecovery, body.WorkoutType)

		writeJSON(w, http.StatusOK, runLogJSON)
	})

	_, err := client.UpdateLog(context.Background(), workout.NewDate(2025, time.January, 15), workout.WorkoutLogCreate{
		Date:        workout.NewDate(2025, time.January, 15),
		WorkoutType: workout.WorkoutTypeRecovery,
	})
	require.NoError(t, err)
}

func TestClient_DeleteLog(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:   "no content",
			status: http.StatusNoContent,
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `{"detail": "Log not found for date 2025-01-15"}`,
			wantErr: "Log not found for date 2025-01-15",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/logs/2025-01-15", r.URL.Path)
				if tt.body == "" {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			})

			err := client.DeleteLog(context.Background(), workout.NewDate(2025, time.January, 15))
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClient_AnalyzeLog(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analysis/2025-01-15", r.URL.Path)
		assert.Equal(t, "14", r.URL.Query().Get("include_history_days"))
		writeJSON(w, http.StatusOK, analyzedLogJSON)
	})

	got, err := client.AnalyzeLog(context.Background(), workout.NewDate(2025, time.January, 15), 14)
	require.NoError(t, err)
	require.NotNil(t, got.AIAnalysis)
	assert.Equal(t, "Easy pace, keep it up.", got.Insight())
	assert.Equal(t, "base", got.AIAnalysis.MachineContext.TrainingPhase)
}

func TestClient_GetSummaryStats(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    workout.SummaryStats
		wantErr error
	}{
		{
			name: "with logs",
			body: `{"total_logs": 3, "date_range": {"first": "2025-01-01", "last": "2025-01-15"}, "workout_types": {"run": 2, "strength": 1}}`,
			want: workout.SummaryStats{
				TotalLogs: 3,
				DateRange: &workout.DateRange{
					First: workout.NewDate(2025, time.January, 1),
					Last:  workout.NewDate(2025, time.January, 15),
				},
				WorkoutTypes: map[workout.WorkoutType]int{
					workout.WorkoutTypeRun:      2,
					workout.WorkoutTypeStrength: 1,
				},
			},
		},
		{
			name: "no logs",
			body: `{"total_logs": 0, "date_range": null, "workout_types": {}}`,
			want: workout.SummaryStats{
				WorkoutTypes: map[workout.WorkoutType]int{},
			},
		},
		{
			name:    "negative total",
			body:    `{"total_logs": -1, "date_range": null, "workout_types": {}}`,
			wantErr: api.ErrMalformedResponse,
		},
		{
			name:    "unknown workout type",
			body:    `{"total_logs": 1, "date_range": null, "workout_types": {"swim": 1}}`,
			wantErr: api.ErrMalformedResponse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/stats/summary", r.URL.Path)
				writeJSON(w, http.StatusOK, tt.body)
			})

			got, err := client.GetSummaryStats(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_GetLogDates(t *testing.T) {
	manager := metrics.NewTestManager()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/logs/dates", r.URL.Path)
		writeJSON(w, http.StatusOK, `["2025-01-15", "2025-01-14"]`)
	})
	client.metrics = manager

	got, err := client.GetLogDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []workout.Date{
		workout.NewDate(2025, time.January, 15),
		workout.NewDate(2025, time.January, 14),
	}, got)
	assert.Equal(t, float64(1), testutil.ToFloat64(
		manager.CounterAPIRequests.WithLabelValues("/logs/dates", http.MethodGet, "200"),
	))
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetLogs(ctx, api.DefaultDays)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetailMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string", body: `{"detail": "boom"}`, want: "boom"},
		{name: "list", body: `{"detail": [{"msg": "a"}, {"msg": ""}, {"msg": "b"}]}`, want: "a; b"},
		{name: "object", body: `{"detail": {"msg": "a"}}`, want: ""},
		{name: "null", body: `{"detail": null}`, want: ""},
		{name: "empty body", body: ``, want: ""},
		{name: "html", body: `<html></html>`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detailMessage([]byte(tt.body)))
		})
	}
}
