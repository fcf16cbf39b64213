// Package httpclient implements api.Client over HTTP with resty.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/at-ishikawa/workoutlog/internal/api"
	"github.com/at-ishikawa/workoutlog/internal/metrics"
	"github.com/at-ishikawa/workoutlog/internal/workout"
)

var _ api.Client = (*Client)(nil)

// Client is stateless apart from its base URL and safe for concurrent use
type Client struct {
	httpClient *resty.Client
	baseURL    string
	validator  *workout.Validator
	metrics    *metrics.Manager
}

type Option func(client *Client)

// WithTimeout bounds every request. Zero keeps the default of no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.httpClient.SetTimeout(timeout)
		}
	}
}

func WithMetrics(manager *metrics.Manager) Option {
	return func(client *Client) {
		client.metrics = manager
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	validator, err := workout.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("workout.NewValidator() > %w", err)
	}

	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetHeader("Content-Type", "application/json")
	httpClient.SetHeader("Accept", "application/json")

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		validator:  validator,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// BaseURL returns the API address this client talks to
func (client *Client) BaseURL() string {
	return client.baseURL
}

type request struct {
	method     string
	endpoint   string
	pathParams map[string]string
	query      map[string]string
	body       interface{}
}

// send issues the request once and turns non-2xx responses into *api.Error
func (client *Client) send(ctx context.Context, req request) (*resty.Response, error) {
	r := client.httpClient.R().SetContext(ctx)
	if len(req.pathParams) > 0 {
		r.SetPathParams(req.pathParams)
	}
	if len(req.query) > 0 {
		r.SetQueryParams(req.query)
	}
	if req.body != nil {
		r.SetBody(req.body)
	}

	start := time.Now()
	response, err := r.Execute(req.method, req.endpoint)
	duration := time.Since(start)
	if err != nil {
		client.metrics.ObserveAPIRequest(req.endpoint, req.method, metrics.StatusTransportError, duration)
		slog.Default().Debug("workout api request failed",
			"method", req.method,
			"endpoint", req.endpoint,
			"error", err,
		)
		return nil, fmt.Errorf("httpClient.Execute(%s %s) > %w", req.method, req.endpoint, err)
	}

	client.metrics.ObserveAPIRequest(req.endpoint, req.method, strconv.Itoa(response.StatusCode()), duration)
	slog.Default().Debug("workout api response",
		"method", req.method,
		"endpoint", req.endpoint,
		"status", response.StatusCode(),
		"duration", duration,
	)

	if !response.IsSuccess() {
		return nil, api.NewError(response.StatusCode(), detailMessage(response.Bytes()))
	}
	return response, nil
}

// requestJSON decodes a successful response into T and checks its shape with check
func requestJSON[T any](ctx context.Context, client *Client, req request, check func(T) error) (T, error) {
	var result T
	response, err := client.send(ctx, req)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(response.Bytes(), &result); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s %s: %v", api.ErrMalformedResponse, req.method, req.endpoint, err)
	}
	if err := check(result); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s %s: %v", api.ErrMalformedResponse, req.method, req.endpoint, err)
	}
	return result, nil
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationDetail struct {
	Msg string `json:"msg"`
}

// detailMessage extracts the "detail" of an error body. A list of validation
// errors is joined by "; ". It returns "" when nothing usable was sent.
func detailMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(parsed.Detail, &detail); err == nil {
		return detail
	}

	var details []validationDetail
	if err := json.Unmarshal(parsed.Detail, &details); err == nil {
		messages := make([]string, 0, len(details))
		for _, d := range details {
			if d.Msg != "" {
				messages = append(messages, d.Msg)
			}
		}
		return strings.Join(messages, "; ")
	}
	return ""
}

func (client *Client) HealthCheck(ctx context.Context) (workout.HealthStatus, error) {
	return requestJSON(ctx, client, request{
		method:   http.MethodGet,
		endpoint: "/",
	}, func(status workout.HealthStatus) error {
		return client.validator.Struct(status)
	})
}

func (client *Client) GetLogs(ctx context.Context, days int) ([]workout.WorkoutLog, error) {
	return requestJSON(ctx, client, request{
		method:   http.MethodGet,
		endpoint: "/logs",
		query:    map[string]string{"days": strconv.Itoa(days)},
	}, client.validator.Logs)
}

func (client *Client) GetLogsRange(ctx context.Context, start, end workout.Date) ([]workout.WorkoutLog, error) {
	return requestJSON(ctx, client, request{
		method:   http.MethodGet,
		endpoint: "/logs",
		query: map[string]string{
			"start_date": start.String(),
			"end_date":   end.String(),
		},
	}, client.validator.Logs)
}

func (client *Client) GetLog(ctx context.Context, date workout.Date) (workout.WorkoutLog, error) {
	return requestJSON(ctx, client, request{
		method:     http.MethodGet,
		endpoint:   "/logs/{date}",
		pathParams: map[string]string{"date": date.String()},
	}, client.checkLog)
}

func (client *Client) CreateLog(ctx context.Context, log workout.WorkoutLogCreate) (workout.WorkoutLog, error) {
	return requestJSON(ctx, client, request{
		method:   http.MethodPost,
		endpoint: "/logs",
		body:     log,
	}, client.checkLog)
}

func (client *Client) UpdateLog(ctx context.Context, date workout.Date, log workout.WorkoutLogCreate) (workout.WorkoutLog, error) {
	return requestJSON(ctx, client, request{
		method:     http.MethodPut,
		endpoint:   "/logs/{date}",
		pathParams: map[string]string{"date": date.String()},
		body:       log,
	}, client.checkLog)
}

func (client *Client) DeleteLog(ctx context.Context, date workout.Date) error {
	_, err := client.send(ctx, request{
		method:     http.MethodDelete,
		endpoint:   "/logs/{date}",
		pathParams: map[string]string{"date": date.String()},
	})
	return err
}

// AnalyzeLog asks the server to analyze the log at date with up to historyDays of earlier logs as context
func (client *Client) AnalyzeLog(ctx context.Context, date workout.Date, historyDays int) (workout.WorkoutLog, error) {
	return requestJSON(ctx, client, request{
		method:     http.MethodPost,
		endpoint:   "/analysis/{date}",
		pathParams: map[string]string{"date": date.String()},
		query:      map[string]string{"include_history_days": strconv.Itoa(historyDays)},
	}, client.checkLog)
}

func (client *Client) GetSummaryStats(ctx context.Context) (workout.SummaryStats, error) {
	return requestJSON(ctx, client, request{
		method:   http.MethodGet,
		endpoint: "/stats/summary",
	}, func(stats workout.SummaryStats) error {
		return client.validator.Struct(stats)
	})
}

func (client *Client) GetLogDates(ctx context.Context) ([]workout.Date, error) {
	return requestJSON(ctx, client, request{
		method:   http.MethodGet,
		endpoint: "/logs/dates",
	}, client.validator.Dates)
}

func (client *Client) checkLog(log workout.WorkoutLog) error {
	return client.validator.Struct(log)
}
