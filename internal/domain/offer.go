package domain

import (
	"context"
	"time"
)

// Offer status
const (
	OfferStatusSent     = "sent"
	OfferStatusAccepted = "accepted"
	OfferStatusDeclined = "declined"
	OfferStatusExpired  = "expired"
)

// JobOffer is one professional's invitation to a job. A job may fan out to
// many professionals as individual offer records.
type JobOffer struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	ProfessionalID string    `json:"professional_id"`
	Status         string    `json:"status"`
	SentAt         time.Time `json:"sent_at"`
}

// AcceptResult bundles everything created by an acceptance.
type AcceptResult struct {
	Offer      *JobOffer      `json:"offer,omitempty"`
	Job        *JobRequest    `json:"job"`
	Assignment *JobAssignment `json:"assignment"`
	Thread     *ChatThread    `json:"thread"`
}

type OfferUsecase interface {
	// Accept takes a sent offer. Accepting twice must not create a second
	// assignment; the first result is returned unchanged.
	Accept(ctx context.Context, professionalID, offerID string) (*AcceptResult, error)
	// AcceptJob takes an open/distributed job directly, without a prior
	// offer record, as long as no assignment exists yet.
	AcceptJob(ctx context.Context, professionalID, jobID string) (*AcceptResult, error)
	Decline(ctx context.Context, professionalID, offerID string) error
	// Remove permanently deletes a declined offer from the professional's
	// list. This is the only entity deletion in the system besides reset.
	Remove(ctx context.Context, professionalID, offerID string) error
	Expire(ctx context.Context, offerID string) error
	ListForProfessional(ctx context.Context, professionalID, status string) ([]OfferWithJob, error)
}

// OfferWithJob joins the offer with its job and company for dashboards.
type OfferWithJob struct {
	JobOffer
	Job     JobRequest      `json:"job"`
	Company *CompanyProfile `json:"company,omitempty"`
}
