package bitrix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmoreira/callsync/internal/types"
	"github.com/rs/zerolog"
)

// Client invokes CRM REST methods over an inbound webhook. Each
// logical operation is a method name appended to the webhook base URL
// and called via POST with a JSON parameter body. Successful responses
// wrap their payload in a "result" field.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new CRM webhook client
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CallMethod invokes one REST method and decodes its "result" payload
// into out. Transport faults and non-2xx responses are logged and
// reported as an error; callers treat that as "no result" and
// continue (no retries).
func (c *Client) CallMethod(ctx context.Context, method string, params interface{}, out interface{}) error {
	if params == nil {
		params = struct{}{}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params for %s: %w", method, err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Msg("CRM request failed")
		return fmt.Errorf("CRM request failed for %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().Int("status", resp.StatusCode).Str("method", method).Msg("CRM returned non-success status")
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, method)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", method, err)
	}
	if envelope.Result == nil {
		return fmt.Errorf("no result field in response for %s", method)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to decode result for %s: %w", method, err)
	}
	return nil
}

// GetDepartments lists all departments in the CRM directory.
func (c *Client) GetDepartments(ctx context.Context) ([]types.CRMDepartment, error) {
	var departments []types.CRMDepartment
	if err := c.CallMethod(ctx, "department.get", nil, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// GetUsersByDepartment lists all users belonging to one department.
func (c *Client) GetUsersByDepartment(ctx context.Context, departmentID string) ([]types.CRMUser, error) {
	params := map[string]interface{}{
		"filter": map[string]interface{}{
			"UF_DEPARTMENT": departmentID,
		},
	}
	var users []types.CRMUser
	if err := c.CallMethod(ctx, "user.get", params, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetCallStatistics fetches one user's call records for one direction
// within [start, end], ordered by start time ascending. The statistics
// API cannot return both directions in a single call.
func (c *Client) GetCallStatistics(ctx context.Context, userID string, direction types.Direction, start, end time.Time) ([]types.CallRecord, error) {
	params := map[string]interface{}{
		"filter": map[string]interface{}{
			"PORTAL_USER_ID":    userID,
			">=CALL_START_DATE": start.Format(time.RFC3339),
			"<=CALL_START_DATE": end.Format(time.RFC3339),
			"CALL_TYPE":         int(direction),
		},
		"order": map[string]string{
			"CALL_START_DATE": "ASC",
		},
	}
	var records []types.CallRecord
	if err := c.CallMethod(ctx, "voximplant.statistic.get", params, &records); err != nil {
		return nil, err
	}
	return records, nil
}
