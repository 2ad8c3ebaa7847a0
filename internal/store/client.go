package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

const (
	holidayPath = "/master-calendar/holiday/"
	payrollPath = "/master-calendar/payrollperiod/"
)

// Client talks to the master-calendar endpoints of the backend API.
// Every call takes the bearer credential explicitly; the client holds no
// ambient token state. Failed requests are never retried automatically;
// retries are a user decision.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new master-calendar API client. A zero timeout
// falls back to the default.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ListHolidays fetches all holidays, ordered by date as the backend
// returns them. The token may be empty; the backend decides visibility.
func (c *Client) ListHolidays(ctx context.Context, token string) ([]Holiday, error) {
	var holidays []Holiday
	if err := c.doList(ctx, token, holidayPath, &holidays); err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	c.logger.Info("Holidays fetched", zap.Int("count", len(holidays)))
	return holidays, nil
}

// CreateHoliday persists a new holiday and returns the stored record
func (c *Client) CreateHoliday(ctx context.Context, token string, h Holiday) (Holiday, error) {
	var created Holiday
	if err := c.doRequest(ctx, http.MethodPost, holidayPath, token, h, &created); err != nil {
		return Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	c.logger.Info("Holiday created",
		zap.String("id", created.ID.String()),
		zap.String("name", created.Name))
	return created, nil
}

// UpdateHoliday replaces an existing holiday record
func (c *Client) UpdateHoliday(ctx context.Context, token string, id FlexibleID, h Holiday) (Holiday, error) {
	var updated Holiday
	path := fmt.Sprintf("%s%s/", holidayPath, id)
	if err := c.doRequest(ctx, http.MethodPut, path, token, h, &updated); err != nil {
		return Holiday{}, fmt.Errorf("failed to update holiday %s: %w", id, err)
	}

	c.logger.Info("Holiday updated",
		zap.String("id", updated.ID.String()),
		zap.String("name", updated.Name))
	return updated, nil
}

// PatchHoliday issues a partial update. Re-saving a holiday with its own
// fields is how the backend's signal handlers are nudged into pushing
// holidays out to employee schedules.
func (c *Client) PatchHoliday(ctx context.Context, token string, id FlexibleID, h Holiday) (Holiday, error) {
	var patched Holiday
	path := fmt.Sprintf("%s%s/", holidayPath, id)
	if err := c.doRequest(ctx, http.MethodPatch, path, token, h, &patched); err != nil {
		return Holiday{}, fmt.Errorf("failed to patch holiday %s: %w", id, err)
	}

	c.logger.Info("Holiday patched", zap.String("id", id.String()))
	return patched, nil
}

// DeleteHoliday removes a holiday record
func (c *Client) DeleteHoliday(ctx context.Context, token string, id FlexibleID) error {
	path := fmt.Sprintf("%s%s/", holidayPath, id)
	if err := c.doRequest(ctx, http.MethodDelete, path, token, nil, nil); err != nil {
		return fmt.Errorf("failed to delete holiday %s: %w", id, err)
	}

	c.logger.Info("Holiday deleted", zap.String("id", id.String()))
	return nil
}

// ListPayrollPeriods fetches all payroll periods
func (c *Client) ListPayrollPeriods(ctx context.Context, token string) ([]PayrollPeriod, error) {
	var periods []PayrollPeriod
	if err := c.doList(ctx, token, payrollPath, &periods); err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}

	c.logger.Info("Payroll periods fetched", zap.Int("count", len(periods)))
	return periods, nil
}

// CreatePayrollPeriod persists a new payroll period
func (c *Client) CreatePayrollPeriod(ctx context.Context, token string, p PayrollPeriod) (PayrollPeriod, error) {
	var created PayrollPeriod
	if err := c.doRequest(ctx, http.MethodPost, payrollPath, token, p, &created); err != nil {
		return PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	c.logger.Info("Payroll period created", zap.String("id", created.ID.String()))
	return created, nil
}

// UpdatePayrollPeriod replaces an existing payroll period
func (c *Client) UpdatePayrollPeriod(ctx context.Context, token string, id FlexibleID, p PayrollPeriod) (PayrollPeriod, error) {
	var updated PayrollPeriod
	path := fmt.Sprintf("%s%s/", payrollPath, id)
	if err := c.doRequest(ctx, http.MethodPut, path, token, p, &updated); err != nil {
		return PayrollPeriod{}, fmt.Errorf("failed to update payroll period %s: %w", id, err)
	}

	c.logger.Info("Payroll period updated", zap.String("id", updated.ID.String()))
	return updated, nil
}

// DeletePayrollPeriod removes a payroll period record
func (c *Client) DeletePayrollPeriod(ctx context.Context, token string, id FlexibleID) error {
	path := fmt.Sprintf("%s%s/", payrollPath, id)
	if err := c.doRequest(ctx, http.MethodDelete, path, token, nil, nil); err != nil {
		return fmt.Errorf("failed to delete payroll period %s: %w", id, err)
	}

	c.logger.Info("Payroll period deleted", zap.String("id", id.String()))
	return nil
}

// doList fetches a collection endpoint. The backend paginates some
// deployments (DRF page envelope) and returns bare arrays on others, so
// both shapes are accepted.
func (c *Client) doList(ctx context.Context, token, path string, result interface{}) error {
	var raw json.RawMessage
	if err := c.doRequest(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, result); err == nil {
		return nil
	}

	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to parse list response: %w", err)
	}
	if envelope.Results == nil {
		return fmt.Errorf("failed to parse list response: no results field")
	}
	if err := json.Unmarshal(envelope.Results, result); err != nil {
		return fmt.Errorf("failed to parse list results: %w", err)
	}
	return nil
}

// doRequest performs a single authenticated HTTP request
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.logger.Warn("Request rejected by server",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
