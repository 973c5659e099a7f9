package fieldservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"joeyjob/models"
	"joeyjob/utils"

	"go.uber.org/zap"
)

// SimproClient talks to one organization's Simpro build over its REST API.
type SimproClient struct {
	creds  *models.IntegrationCredentials
	client *http.Client
}

// NewSimproClient builds a client for the given credentials. Pass nil creds
// for an organization that never connected Simpro; Configured() then reports
// false and every call fails with a config-shaped error.
func NewSimproClient(creds *models.IntegrationCredentials, timeout time.Duration) *SimproClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SimproClient{
		creds:  creds,
		client: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the stored credentials are complete.
func (sc *SimproClient) Configured() bool {
	return sc.creds.Configured()
}

type simproJobPayload struct {
	Customer struct {
		GivenName  string `json:"GivenName"`
		FamilyName string `json:"FamilyName"`
		Email      string `json:"Email,omitempty"`
		Phone      string `json:"Phone,omitempty"`
		Address    struct {
			Line1    string `json:"Line1,omitempty"`
			Line2    string `json:"Line2,omitempty"`
			City     string `json:"City,omitempty"`
			State    string `json:"State,omitempty"`
			PostCode string `json:"PostCode,omitempty"`
			Country  string `json:"Country,omitempty"`
		} `json:"Address"`
	} `json:"Customer"`
	Job struct {
		Name        string `json:"Name"`
		Description string `json:"Description,omitempty"`
		Notes       string `json:"Notes,omitempty"`
	} `json:"Job"`
	EmployeeID string          `json:"EmployeeID"`
	Blocks     []ScheduleBlock `json:"Blocks"`
}

type simproJobResponse struct {
	JobID      string `json:"JobID"`
	CustomerID string `json:"CustomerID"`
	ScheduleID string `json:"ScheduleID"`
	SiteID     string `json:"SiteID"`
}

// CreateServiceJob creates the customer, job and schedule in one call.
func (sc *SimproClient) CreateServiceJob(ctx context.Context, req CreateJobRequest) (*JobResult, error) {
	if !sc.Configured() {
		return nil, &APIError{Kind: KindAuth, StatusCode: 0, Message: "integration not configured"}
	}

	var payload simproJobPayload
	payload.Customer.GivenName = req.Customer.FirstName
	payload.Customer.FamilyName = req.Customer.LastName
	payload.Customer.Email = req.Customer.Email
	payload.Customer.Phone = req.Customer.Phone
	payload.Customer.Address.Line1 = req.Customer.Address.Line1
	payload.Customer.Address.Line2 = req.Customer.Address.Line2
	payload.Customer.Address.City = req.Customer.Address.City
	payload.Customer.Address.State = req.Customer.Address.State
	payload.Customer.Address.PostCode = req.Customer.Address.Postcode
	payload.Customer.Address.Country = req.Customer.Address.Country
	payload.Job.Name = req.JobName
	payload.Job.Description = req.JobDescription
	payload.Job.Notes = req.Notes
	payload.EmployeeID = req.EmployeeExternalID
	payload.Blocks = req.Blocks

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding job payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1.0/companies/%s/serviceJobs/", sc.creds.BaseURL, sc.creds.CompanyID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building job request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+sc.creds.AccessToken)
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	resp, err := sc.client.Do(httpReq)
	if err != nil {
		return nil, &APIError{Kind: KindUnavailable, StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var jobResp simproJobResponse
	if err := json.NewDecoder(resp.Body).Decode(&jobResp); err != nil {
		return nil, fmt.Errorf("decoding job response: %w", err)
	}

	utils.GetLogger().Info("Created external service job",
		zap.String("jobID", jobResp.JobID),
		zap.String("employeeID", req.EmployeeExternalID))

	return &JobResult{
		JobID:      jobResp.JobID,
		CustomerID: jobResp.CustomerID,
		ScheduleID: jobResp.ScheduleID,
		SiteID:     jobResp.SiteID,
	}, nil
}

// GetEmployeeSchedules returns the employee's committed schedule blocks
// inside [from, to).
func (sc *SimproClient) GetEmployeeSchedules(ctx context.Context, employeeExternalID string, from, to time.Time) ([]ScheduleBlock, error) {
	if !sc.Configured() {
		return nil, &APIError{Kind: KindAuth, StatusCode: 0, Message: "integration not configured"}
	}

	endpoint := fmt.Sprintf("%s/api/v1.0/companies/%s/employees/%s/schedules/?%s",
		sc.creds.BaseURL, sc.creds.CompanyID, url.PathEscape(employeeExternalID),
		url.Values{
			"from": []string{from.Format("2006-01-02")},
			"to":   []string{to.Format("2006-01-02")},
		}.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building schedules request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+sc.creds.AccessToken)

	resp, err := sc.client.Do(httpReq)
	if err != nil {
		return nil, &APIError{Kind: KindUnavailable, StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var blocks []ScheduleBlock
	if err := json.NewDecoder(resp.Body).Decode(&blocks); err != nil {
		return nil, fmt.Errorf("decoding schedules response: %w", err)
	}
	return blocks, nil
}

// checkStatus maps HTTP failures onto the error taxonomy. Response bodies are
// logged but never propagated into user-facing messages.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	utils.GetLogger().Warn("Field-service API error",
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", snippet))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &APIError{Kind: KindAuth, StatusCode: resp.StatusCode, Message: "external system rejected stored credentials"}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return &APIError{Kind: KindValidation, StatusCode: resp.StatusCode, Message: "external system rejected the request payload"}
	default:
		return &APIError{Kind: KindUnavailable, StatusCode: resp.StatusCode, Message: "external system request failed"}
	}
}
