package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/at-ishikawa/workoutlog/internal/workout"
)

// FakeBackend is an in-memory workout log API served over httptest.
// It stores one log per date and answers with the same status codes and
// detail messages as the real backend.
type FakeBackend struct {
	Server *httptest.Server
	Today  workout.Date

	mu   sync.Mutex
	logs map[string]workout.WorkoutLog
	// failures maps "METHOD path-template" to a forced error status
	failures map[string]int
}

// NewFakeBackend starts a fake backend seeded with logs. It is closed when the test ends.
func NewFakeBackend(t *testing.T, today workout.Date, logs ...workout.WorkoutLog) *FakeBackend {
	t.Helper()

	backend := &FakeBackend{
		Today:    today,
		logs:     make(map[string]workout.WorkoutLog),
		failures: make(map[string]int),
	}
	for _, log := range logs {
		backend.logs[log.Date.String()] = log
	}

	router := mux.NewRouter()
	router.HandleFunc("/", backend.health).Methods(http.MethodGet)
	router.HandleFunc("/logs", backend.listLogs).Methods(http.MethodGet)
	router.HandleFunc("/logs", backend.createLog).Methods(http.MethodPost)
	router.HandleFunc("/logs/dates", backend.listDates).Methods(http.MethodGet)
	router.HandleFunc("/logs/{date}", backend.getLog).Methods(http.MethodGet)
	router.HandleFunc("/logs/{date}", backend.updateLog).Methods(http.MethodPut)
	router.HandleFunc("/logs/{date}", backend.deleteLog).Methods(http.MethodDelete)
	router.HandleFunc("/analysis/{date}", backend.analyzeLog).Methods(http.MethodPost)
	router.HandleFunc("/stats/summary", backend.summary).Methods(http.MethodGet)
	router.Use(backend.failureMiddleware)

	backend.Server = httptest.NewServer(router)
	t.Cleanup(backend.Server.Close)
	return backend
}

func (backend *FakeBackend) URL() string {
	return backend.Server.URL
}

// Fail makes every request matching method and route template answer with status
func (backend *FakeBackend) Fail(method, pathTemplate string, status int) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.failures[method+" "+pathTemplate] = status
}

// Log returns the stored log for date
func (backend *FakeBackend) Log(date workout.Date) (workout.WorkoutLog, bool) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	log, ok := backend.logs[date.String()]
	return log, ok
}

func (backend *FakeBackend) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pathTemplate := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				pathTemplate = tmpl
			}
		}

		backend.mu.Lock()
		status, ok := backend.failures[r.Method+" "+pathTemplate]
		backend.mu.Unlock()
		if ok {
			writeDetail(w, status, fmt.Sprintf("forced failure for %s %s", r.Method, pathTemplate))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (backend *FakeBackend) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, workout.HealthStatus{
		Status:  "healthy",
		Service: "Workout Tracker API",
		Version: "1.0.0",
	})
}

func (backend *FakeBackend) listLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	startValue, endValue := query.Get("start_date"), query.Get("end_date")
	if startValue != "" && endValue != "" {
		start, err := workout.ParseDate(startValue)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		end, err := workout.ParseDate(endValue)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if start.After(end) {
			writeDetail(w, http.StatusBadRequest, "start_date must be before end_date")
			return
		}
		writeJSON(w, http.StatusOK, backend.logsBetween(start, end))
		return
	}

	days := 7
	if value := query.Get("days"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 || parsed > 90 {
			writeDetail(w, http.StatusUnprocessableEntity, "days must be between 1 and 90")
			return
		}
		days = parsed
	}
	writeJSON(w, http.StatusOK, backend.logsBetween(backend.Today.AddDays(-(days-1)), backend.Today))
}

func (backend *FakeBackend) logsBetween(start, end workout.Date) []workout.WorkoutLog {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	logs := make([]workout.WorkoutLog, 0)
	for _, log := range backend.logs {
		if log.Date.Before(start) || log.Date.After(end) {
			continue
		}
		logs = append(logs, log)
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
	return logs
}

func (backend *FakeBackend) createLog(w http.ResponseWriter, r *http.Request) {
	var payload workout.WorkoutLogCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if _, ok := backend.logs[payload.Date.String()]; ok {
		writeDetail(w, http.StatusConflict, fmt.Sprintf("Log already exists for %s. Use PUT to update.", payload.Date))
		return
	}

	now := workout.NewTimestamp(time.Now())
	log := fromPayload(payload, workout.Metadata{CreatedAt: now, UpdatedAt: now})
	backend.logs[payload.Date.String()] = log
	writeJSON(w, http.StatusCreated, log)
}

func (backend *FakeBackend) listDates(w http.ResponseWriter, _ *http.Request) {
	backend.mu.Lock()
	dates := make([]workout.Date, 0, len(backend.logs))
	for _, log := range backend.logs {
		dates = append(dates, log.Date)
	}
	backend.mu.Unlock()

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	writeJSON(w, http.StatusOK, dates)
}

func (backend *FakeBackend) getLog(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}
	log, ok := backend.Log(date)
	if !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("No log found for %s", date))
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (backend *FakeBackend) updateLog(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}
	var payload workout.WorkoutLogCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	existing, ok := backend.logs[date.String()]
	if !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("No log found for %s", date))
		return
	}
	log := fromPayload(payload, existing.Metadata)
	backend.logs[log.Date.String()] = log
	writeJSON(w, http.StatusOK, log)
}

func (backend *FakeBackend) deleteLog(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if _, ok := backend.logs[date.String()]; !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("No log found for %s", date))
		return
	}
	delete(backend.logs, date.String())
	w.WriteHeader(http.StatusNoContent)
}

func (backend *FakeBackend) analyzeLog(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}
	historyDays := 7
	if value := r.URL.Query().Get("include_history_days"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 || parsed > 30 {
			writeDetail(w, http.StatusUnprocessableEntity, "include_history_days must be between 1 and 30")
			return
		}
		historyDays = parsed
	}

	history := backend.logsBetween(date.AddDays(-historyDays), date.AddDays(-1))

	backend.mu.Lock()
	defer backend.mu.Unlock()
	log, ok := backend.logs[date.String()]
	if !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("No log found for %s", date))
		return
	}
	log.AIAnalysis = &workout.AIAnalysis{
		HumanInsight: fmt.Sprintf("Analyzed %s with %d earlier logs.", log.WorkoutType, len(history)),
		MachineContext: workout.MachineContext{
			TrainingPhase: "base",
		},
		AnalyzedAt: workout.NewTimestamp(time.Now()),
	}
	backend.logs[date.String()] = log
	writeJSON(w, http.StatusOK, log)
}

func (backend *FakeBackend) summary(w http.ResponseWriter, _ *http.Request) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	stats := workout.SummaryStats{
		TotalLogs:    len(backend.logs),
		WorkoutTypes: make(map[workout.WorkoutType]int),
	}
	for _, log := range backend.logs {
		stats.WorkoutTypes[log.WorkoutType]++
		if stats.DateRange == nil {
			stats.DateRange = &workout.DateRange{First: log.Date, Last: log.Date}
			continue
		}
		if log.Date.Before(stats.DateRange.First) {
			stats.DateRange.First = log.Date
		}
		if log.Date.After(stats.DateRange.Last) {
			stats.DateRange.Last = log.Date
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func fromPayload(payload workout.WorkoutLogCreate, metadata workout.Metadata) workout.WorkoutLog {
	return workout.WorkoutLog{
		Date:               payload.Date,
		WorkoutType:        payload.WorkoutType,
		Exercises:          payload.Exercises,
		RunningData:        payload.RunningData,
		PerceivedEffort:    payload.PerceivedEffort,
		FatigueLevel:       payload.FatigueLevel,
		PainOrTightness:    payload.PainOrTightness,
		FreeTextReflection: payload.FreeTextReflection,
		Metadata:           metadata,
	}
}

func pathDate(w http.ResponseWriter, r *http.Request) (workout.Date, bool) {
	date, err := workout.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return workout.Date{}, false
	}
	return date, true
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
