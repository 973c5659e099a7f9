package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"joeyjob/models"
	"joeyjob/services/fieldservice"
)

// In-memory fakes for the engine's collaborators. They implement just enough
// behavior for the workflow tests: the booking fake answers overlap queries
// with real interval logic so buffer handling is exercised end to end.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, bk *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *bk
	r.bookings[bk.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	cp := *bk
	return &cp, nil
}

func (r *fakeBookingRepo) GetByConfirmationCode(ctx context.Context, orgID, code string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bk := range r.bookings {
		if bk.OrganizationID == orgID && bk.ConfirmationCode == code {
			cp := *bk
			return &cp, nil
		}
	}
	return nil, errors.New("booking not found")
}

func (r *fakeBookingRepo) ListByOrganization(ctx context.Context, orgID string, from, to time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.OrganizationID == orgID && !bk.BookingStartAt.Before(from) && bk.BookingStartAt.Before(to) {
			out = append(out, *bk)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	bk.Status = status
	return nil
}

func (r *fakeBookingRepo) Confirm(ctx context.Context, id, employeeExternalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	bk.Status = models.BookingStatusConfirmed
	bk.EmployeeExternalID = employeeExternalID
	return nil
}

func (r *fakeBookingRepo) SetEmployee(ctx context.Context, id, employeeExternalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	bk.EmployeeExternalID = employeeExternalID
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) FindOverlapping(ctx context.Context, orgID, employeeExternalID string, from, to time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.OrganizationID != orgID || bk.EmployeeExternalID != employeeExternalID {
			continue
		}
		if bk.Status != models.BookingStatusPending && bk.Status != models.BookingStatusConfirmed {
			continue
		}
		if bk.BookingStartAt.Before(to) && bk.BookingEndAt.After(from) {
			out = append(out, *bk)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees []models.Employee
}

func (r *fakeEmployeeRepo) GetByExternalID(ctx context.Context, orgID, externalID string) (*models.Employee, error) {
	for i := range r.employees {
		if r.employees[i].OrganizationID == orgID && r.employees[i].ExternalID == externalID {
			return &r.employees[i], nil
		}
	}
	return nil, errors.New("employee not found")
}

func (r *fakeEmployeeRepo) GetEnabledByExternalIDs(ctx context.Context, orgID string, externalIDs []string) ([]models.Employee, error) {
	byID := make(map[string]models.Employee)
	for _, e := range r.employees {
		if e.OrganizationID == orgID && e.Enabled {
			byID[e.ExternalID] = e
		}
	}
	var out []models.Employee
	for _, id := range externalIDs {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) ListByOrganization(ctx context.Context, orgID string) ([]models.Employee, error) {
	var out []models.Employee
	for _, e := range r.employees {
		if e.OrganizationID == orgID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Upsert(ctx context.Context, employee *models.Employee) error {
	for i := range r.employees {
		if r.employees[i].OrganizationID == employee.OrganizationID && r.employees[i].ExternalID == employee.ExternalID {
			r.employees[i] = *employee
			return nil
		}
	}
	r.employees = append(r.employees, *employee)
	return nil
}

func (r *fakeEmployeeRepo) SetEnabled(ctx context.Context, orgID, externalID string, enabled bool) error {
	for i := range r.employees {
		if r.employees[i].OrganizationID == orgID && r.employees[i].ExternalID == externalID {
			r.employees[i].Enabled = enabled
			return nil
		}
	}
	return errors.New("employee not found")
}

type fakeFormRepo struct {
	form *models.BookingForm
	err  error
}

func (r *fakeFormRepo) GetActiveForm(ctx context.Context, orgID string) (*models.BookingForm, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.form, nil
}

func (r *fakeFormRepo) GetByID(ctx context.Context, orgID, formID string) (*models.BookingForm, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.form, nil
}

type fakeAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[string]*models.Assignment // keyed by booking id
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[string]*models.Assignment)}
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, a *models.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.assignments[a.BookingID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[bookingID]
	if !ok {
		return nil, errors.New("assignment not found")
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssignmentRepo) UpdateSync(ctx context.Context, bookingID, syncStatus, syncError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[bookingID]
	if !ok {
		return errors.New("assignment not found")
	}
	a.SyncStatus = syncStatus
	a.SyncError = syncError
	return nil
}

func (r *fakeAssignmentRepo) SetExternalRefs(ctx context.Context, bookingID string, jobID, customerID, scheduleID, siteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[bookingID]
	if !ok {
		return errors.New("assignment not found")
	}
	a.ExternalJobID = jobID
	a.ExternalCustomerID = customerID
	a.ExternalScheduleID = scheduleID
	a.ExternalSiteID = siteID
	a.SyncStatus = models.SyncStatusSynced
	a.SyncError = ""
	return nil
}

func (r *fakeAssignmentRepo) ListFailed(ctx context.Context, orgID string) ([]models.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Assignment
	for _, a := range r.assignments {
		if a.OrganizationID == orgID && a.SyncStatus == models.SyncStatusFailed {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeIntegrationRepo struct {
	creds *models.IntegrationCredentials
	err   error
}

func (r *fakeIntegrationRepo) GetCredentials(ctx context.Context, orgID string) (*models.IntegrationCredentials, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.creds, nil
}

func (r *fakeIntegrationRepo) SaveCredentials(ctx context.Context, creds *models.IntegrationCredentials) error {
	r.creds = creds
	return nil
}

func (r *fakeIntegrationRepo) UpdateAccessToken(ctx context.Context, orgID, accessToken string, expiresAt time.Time) error {
	if r.creds != nil {
		r.creds.AccessToken = accessToken
		r.creds.TokenExpiresAt = expiresAt
	}
	return nil
}

type fakeFieldService struct {
	mu         sync.Mutex
	configured bool
	createErr  error
	job        *fieldservice.JobResult
	schedules  map[string][]fieldservice.ScheduleBlock // by employee external id
	schedErr   error

	createCalls []fieldservice.CreateJobRequest
}

func (f *fakeFieldService) Configured() bool { return f.configured }

func (f *fakeFieldService) CreateServiceJob(ctx context.Context, req fieldservice.CreateJobRequest) (*fieldservice.JobResult, error) {
	f.mu.Lock()
	f.createCalls = append(f.createCalls, req)
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.job != nil {
		return f.job, nil
	}
	return &fieldservice.JobResult{JobID: "job-1", CustomerID: "cust-1", ScheduleID: "sched-1"}, nil
}

func (f *fakeFieldService) GetEmployeeSchedules(ctx context.Context, employeeExternalID string, from, to time.Time) ([]fieldservice.ScheduleBlock, error) {
	if f.schedErr != nil {
		return nil, f.schedErr
	}
	return f.schedules[employeeExternalID], nil
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	calls []string
}

func (e *fakeEnqueuer) EnqueueSyncRetry(ctx context.Context, bookingID string, delay time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, bookingID)
	return nil
}
