package domain

import (
	"context"
	"time"
)

// Job request status, advancing monotonically except for cancellation.
const (
	JobStatusOpen        = "open"
	JobStatusDistributed = "distributed"
	JobStatusMatched     = "matched"
	JobStatusInProgress  = "in_progress"
	JobStatusFinished    = "finished"
	JobStatusCancelled   = "cancelled"
)

// jobStatusRank orders the forward path. Cancelled sits outside the path and
// is only reachable from non-terminal states.
var jobStatusRank = map[string]int{
	JobStatusOpen:        0,
	JobStatusDistributed: 1,
	JobStatusMatched:     2,
	JobStatusInProgress:  3,
	JobStatusFinished:    4,
}

// JobStatusTerminal reports whether no further transition is allowed.
func JobStatusTerminal(status string) bool {
	return status == JobStatusFinished || status == JobStatusCancelled
}

// CanTransitionJob reports whether a job may move from one status to the
// next. Only strictly forward moves along the path are valid, plus
// cancellation from any non-terminal state.
func CanTransitionJob(from, to string) bool {
	if to == JobStatusCancelled {
		return !JobStatusTerminal(from)
	}
	fromRank, ok := jobStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := jobStatusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// JobRequest is a chamado posted by a company.
type JobRequest struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SkillRequired string    `json:"skill_required"`
	DateStart     time.Time `json:"date_start"`
	DurationHours int       `json:"duration_hours"`
	ValueOffered  float64   `json:"value_offered"`
	AddressText   string    `json:"address_text"`
	GeoLat        float64   `json:"geo_lat"`
	GeoLng        float64   `json:"geo_lng"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// JobWithCompany extends JobRequest with company profile data for listings.
type JobWithCompany struct {
	JobRequest
	CompanyName       string  `json:"company_name"`
	CompanyVerified   bool    `json:"company_verified"`
	CompanyRatingAvg  float64 `json:"company_rating_avg"`
	CompanyJobsClosed int     `json:"company_jobs_closed"`
}

type JobUsecase interface {
	// CreateJob opens a new chamado. With target professional ids the job is
	// created already distributed, fanning out one offer per target.
	CreateJob(ctx context.Context, companyID string, job *JobRequest, targetIDs []string) (*JobRequest, error)
	// Distribute fans offers out to every approved professional holding the
	// required skill and moves the job from open to distributed.
	Distribute(ctx context.Context, companyID, jobID string) ([]JobOffer, error)
	Cancel(ctx context.Context, companyID, jobID string) error
	GetJob(ctx context.Context, jobID string) (*JobWithCompany, error)
	ListByCompany(ctx context.Context, companyID string) ([]JobRequest, error)
	// ListAvailable returns open/distributed jobs a professional could take.
	ListAvailable(ctx context.Context, professionalID string) ([]JobWithCompany, error)
}
