package domain

import (
	"context"
	"time"
)

// Assignment status, following the professional from acceptance to payout.
const (
	AssignmentEnRoute     = "en_route"
	AssignmentArrived     = "arrived"
	AssignmentInExecution = "in_execution"
	AssignmentFinished    = "finished"
)

var assignmentRank = map[string]int{
	AssignmentEnRoute:     0,
	AssignmentArrived:     1,
	AssignmentInExecution: 2,
	AssignmentFinished:    3,
}

// CanTransitionAssignment allows only single forward steps.
func CanTransitionAssignment(from, to string) bool {
	fromRank, ok := assignmentRank[from]
	if !ok {
		return false
	}
	toRank, ok := assignmentRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}

// JobAssignment is created exactly once, at offer acceptance. Its LastLat and
// LastLng drive the movement simulation toward the job coordinate.
type JobAssignment struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	CompanyID      string    `json:"company_id"`
	ProfessionalID string    `json:"professional_id"`
	Status         string    `json:"status"`
	LastLat        float64   `json:"last_lat"`
	LastLng        float64   `json:"last_lng"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Active reports whether the assignment still occupies the professional.
func (a *JobAssignment) Active() bool {
	return a.Status != AssignmentFinished
}

type AssignmentUsecase interface {
	// CheckIn flips en_route to arrived (professional's manual trigger; the
	// movement simulator flips it automatically on proximity).
	CheckIn(ctx context.Context, professionalID, jobID string) (*JobAssignment, error)
	// Start confirms arrival and begins execution; company only. The job
	// moves to in_progress.
	Start(ctx context.Context, companyID, jobID string) (*JobAssignment, error)
	// Finish closes the work; company only. The job moves to finished and
	// the professional's completed-jobs counter is bumped.
	Finish(ctx context.Context, companyID, jobID string) (*JobAssignment, error)
	GetByJob(ctx context.Context, jobID string) (*JobAssignment, error)
	GetActiveForProfessional(ctx context.Context, professionalID string) (*JobAssignment, error)
}
