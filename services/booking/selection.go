package booking

import (
	"context"
	"sync"
	"time"

	"joeyjob/models"
)

// SelectionRequest drives one employee selection run for a requested slot.
type SelectionRequest struct {
	OrganizationID    string
	CandidateIDs      []string // enabled employees assigned to the service, caller order
	DefaultEmployeeID string
	Start             time.Time // UTC
	Policy            models.SchedulingPolicy
	Timezone          string
}

// SelectionOrchestrator evaluates every ranked candidate and picks the first
// available one.
type SelectionOrchestrator struct {
	Evaluator *AvailabilityEvaluator
}

// SelectEmployee ranks the candidates, checks availability for each, and
// applies the rank-then-pick-first-available rule. Evaluations run
// concurrently per candidate; the selection rule is applied only after all
// results are in, so parallelism never races the ranking.
//
// Failure modes are distinct: an empty candidate pool fails with "no eligible
// employees" before any availability check runs, while a pool with no free
// member fails with "no employees available for this time slot". Neither is
// retried here; both are terminal for the caller.
func (so *SelectionOrchestrator) SelectEmployee(ctx context.Context, req SelectionRequest) (*models.SelectionResult, error) {
	if len(req.CandidateIDs) == 0 {
		return nil, NewError(KindInvalidState, "No active employees are assigned to this service.", nil)
	}

	ranked := RankCandidates(req.CandidateIDs, req.DefaultEmployeeID)

	type evaluation struct {
		index     int
		candidate models.Candidate
		err       error
	}

	results := make([]evaluation, len(ranked))
	var wg sync.WaitGroup

	for i, employeeID := range ranked {
		wg.Add(1)
		go func(i int, employeeID string) {
			defer wg.Done()
			available, err := so.Evaluator.IsAvailable(ctx, AvailabilityRequest{
				OrganizationID:     req.OrganizationID,
				EmployeeExternalID: employeeID,
				Start:              req.Start,
				Policy:             req.Policy,
				Timezone:           req.Timezone,
			})
			results[i] = evaluation{
				index: i,
				candidate: models.Candidate{
					EmployeeID:  employeeID,
					IsDefault:   employeeID == req.DefaultEmployeeID,
					IsAvailable: available,
				},
				err: err,
			}
		}(i, employeeID)
	}
	wg.Wait()

	// An evaluator error for any candidate poisons the run: reporting a
	// partial available set could silently drop the default employee.
	for _, res := range results {
		if res.err != nil {
			return nil, NewError(KindInternal, "Could not verify employee availability. Please try again.", res.err)
		}
	}

	var selected string
	var available []string
	for _, res := range results {
		if !res.candidate.IsAvailable {
			continue
		}
		if selected == "" {
			selected = res.candidate.EmployeeID
		}
		available = append(available, res.candidate.EmployeeID)
	}

	if selected == "" {
		return nil, NewError(KindInvalidState, "No employees are available for this time slot. Please choose a different time.", nil)
	}

	return &models.SelectionResult{
		SelectedEmployee:   selected,
		AvailableEmployees: available,
	}, nil
}
