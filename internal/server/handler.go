// Package server serves the dashboard and the log pages over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/at-ishikawa/workoutlog/internal/api"
	"github.com/at-ishikawa/workoutlog/internal/assets"
	"github.com/at-ishikawa/workoutlog/internal/config"
	"github.com/at-ishikawa/workoutlog/internal/dashboard"
	"github.com/at-ishikawa/workoutlog/internal/metrics"
	"github.com/at-ishikawa/workoutlog/internal/workout"
)

const (
	maxHistoryDays = 30
	maxFormBytes   = 1 << 20
)

type Handler struct {
	client      api.Client
	loader      *dashboard.Loader
	dashboard   *dashboard.HTMLRenderer
	logPage     *htmltemplate.Template
	logPath     string
	historyDays int
	today       func() workout.Date
}

func NewHandler(client api.Client, cfg *config.Config, manager *metrics.Manager) (*Handler, error) {
	renderer, err := dashboard.NewHTMLRenderer(cfg.Templates.DashboardHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("dashboard.NewHTMLRenderer() > %w", err)
	}
	logPage, err := assets.ParseHTMLPage(assets.PageLog, cfg.Templates.LogHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseHTMLPage() > %w", err)
	}

	return &Handler{
		client:      client,
		loader:      dashboard.NewLoader(client, cfg.API.BaseURL, cfg.Dashboard.RecentDays, cfg.Dashboard.LogPath, manager),
		dashboard:   renderer,
		logPage:     logPage,
		logPath:     cfg.Dashboard.LogPath,
		historyDays: cfg.Dashboard.HistoryDays,
		today:       workout.Today,
	}, nil
}

// RouterSetup registers the pages, the health probe and the metrics endpoint
func RouterSetup(handler *Handler, manager *metrics.Manager, gatherer prometheus.Gatherer) *mux.Router {
	r := mux.NewRouter()
	r.Use(
		PanicRecovery(manager),
		RequestMetrics(manager),
		LogRequest(),
		DrainAndCloseRequest(),
	)

	r.HandleFunc("/", handler.HandleDashboard).Methods(http.MethodGet).Name("dashboard")
	r.HandleFunc(handler.logPath, handler.HandleLogPage).Methods(http.MethodGet).Name("log-page")
	r.HandleFunc(handler.logPath, handler.HandleCreate).Methods(http.MethodPost).Name("create-log")
	r.HandleFunc(handler.logPath+"/{date}", handler.HandleUpdate).Methods(http.MethodPost).Name("update-log")
	r.HandleFunc(handler.logPath+"/{date}/analyze", handler.HandleAnalyze).Methods(http.MethodPost).Name("analyze-log")
	r.HandleFunc(handler.logPath+"/{date}/delete", handler.HandleDelete).Methods(http.MethodPost).Name("delete-log")
	r.HandleFunc("/healthz", handler.HandleHealth).Methods(http.MethodGet).Name("health")
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet).Name("metrics")
	return r
}

// HandleDashboard loads the dashboard on every request. A failed load still
// renders the page with the error, answered as 502.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	view := h.loader.Load(r.Context())

	var body bytes.Buffer
	if err := h.dashboard.Render(&body, view); err != nil {
		h.internalError(w, r, err)
		return
	}

	status := http.StatusOK
	if view.Failed() {
		status = http.StatusBadGateway
	}
	writeHTML(w, status, body.Bytes())
}

type logPageData struct {
	LogPath          string
	ActionPath       string
	Log              *workout.WorkoutLog
	Editing          bool
	Form             LogForm
	ErrorMessage     string
	HistoryDays      int
	WorkoutTypes     []workout.WorkoutType
	PerceivedEfforts []workout.PerceivedEffort
	PainSeverities   []workout.PainSeverity
}

// HandleLogPage shows the stored log of ?date= with its edit form, or an
// empty form when no date is given or nothing is stored for it
func (h *Handler) HandleLogPage(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("date")
	if value == "" {
		h.renderLogPage(w, r, http.StatusOK, h.newLogData(newLogForm(h.today(), nil)))
		return
	}

	date, err := workout.ParseDate(value)
	if err != nil {
		data := h.newLogData(newLogForm(h.today(), nil))
		data.ErrorMessage = err.Error()
		h.renderLogPage(w, r, http.StatusBadRequest, data)
		return
	}
	h.renderStoredLog(w, r, date, http.StatusOK, "")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	form := readLogForm(r)
	data := h.newLogData(form)

	payload, err := form.Payload()
	if err != nil {
		data.ErrorMessage = err.Error()
		h.renderLogPage(w, r, http.StatusBadRequest, data)
		return
	}

	log, err := h.client.CreateLog(r.Context(), payload)
	if err != nil {
		data.ErrorMessage = err.Error()
		h.renderLogPage(w, r, apiErrorStatus(err), data)
		return
	}
	http.Redirect(w, r, h.logURL(log.Date), http.StatusSeeOther)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	form := readLogForm(r)
	// The date is the key of the stored log and cannot be edited
	form.Date = date.String()
	data := h.newLogData(form)
	data.Editing = true
	data.ActionPath = h.actionPath(date)

	payload, err := form.Payload()
	if err != nil {
		data.ErrorMessage = err.Error()
		h.renderLogPage(w, r, http.StatusBadRequest, data)
		return
	}

	log, err := h.client.UpdateLog(r.Context(), date, payload)
	if err != nil {
		data.ErrorMessage = err.Error()
		h.renderLogPage(w, r, apiErrorStatus(err), data)
		return
	}
	http.Redirect(w, r, h.logURL(log.Date), http.StatusSeeOther)
}

func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	historyDays := h.historyDays
	if value := r.PostFormValue("history_days"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 || parsed > maxHistoryDays {
			h.renderStoredLog(w, r, date, http.StatusBadRequest,
				fmt.Sprintf("history days must be a number from 1 to %d", maxHistoryDays))
			return
		}
		historyDays = parsed
	}

	if _, err := h.client.AnalyzeLog(r.Context(), date, historyDays); err != nil {
		h.renderStoredLog(w, r, date, apiErrorStatus(err), err.Error())
		return
	}
	http.Redirect(w, r, h.logURL(date), http.StatusSeeOther)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}

	if err := h.client.DeleteLog(r.Context(), date); err != nil {
		h.renderStoredLog(w, r, date, apiErrorStatus(err), err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HandleHealth reports whether the workout log API answers
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.client.HealthCheck(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, healthResponse{
			Status: "unhealthy",
			Error:  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  health.Status,
		Service: health.Service,
		Version: health.Version,
	})
}

// renderStoredLog renders the detail of the log on date. A missing log
// falls back to an empty form for that date.
func (h *Handler) renderStoredLog(w http.ResponseWriter, r *http.Request, date workout.Date, status int, message string) {
	log, err := h.client.GetLog(r.Context(), date)
	if err != nil {
		data := h.newLogData(newLogForm(date, nil))
		data.ErrorMessage = message
		if !api.IsNotFound(err) && message == "" {
			data.ErrorMessage = err.Error()
			status = apiErrorStatus(err)
		}
		h.renderLogPage(w, r, status, data)
		return
	}

	data := h.newLogData(newLogForm(date, &log))
	data.Log = &log
	data.Editing = true
	data.ActionPath = h.actionPath(date)
	data.ErrorMessage = message
	h.renderLogPage(w, r, status, data)
}

func (h *Handler) newLogData(form LogForm) logPageData {
	return logPageData{
		LogPath:          h.logPath,
		ActionPath:       h.logPath,
		Form:             form,
		HistoryDays:      h.historyDays,
		WorkoutTypes:     workout.AllWorkoutTypes,
		PerceivedEfforts: workout.AllPerceivedEfforts,
		PainSeverities:   workout.AllPainSeverities,
	}
}

func (h *Handler) renderLogPage(w http.ResponseWriter, r *http.Request, status int, data logPageData) {
	var body bytes.Buffer
	if err := h.logPage.ExecuteTemplate(&body, "layout", data); err != nil {
		h.internalError(w, r, err)
		return
	}
	writeHTML(w, status, body.Bytes())
}

func (h *Handler) pathDate(w http.ResponseWriter, r *http.Request) (workout.Date, bool) {
	date, err := workout.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		data := h.newLogData(newLogForm(h.today(), nil))
		data.ErrorMessage = err.Error()
		h.renderLogPage(w, r, http.StatusBadRequest, data)
		return workout.Date{}, false
	}
	return date, true
}

func (h *Handler) actionPath(date workout.Date) string {
	return h.logPath + "/" + date.String()
}

func (h *Handler) logURL(date workout.Date) string {
	query := url.Values{}
	query.Set("date", date.String())
	return h.logPath + "?" + query.Encode()
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Default().Error("failed to render a page",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// apiErrorStatus passes client errors of the API through and reports
// everything else as a bad gateway
func apiErrorStatus(err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Warn("failed to write a response", slog.Any("error", err))
	}
}
