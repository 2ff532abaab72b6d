package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type offerUsecase struct {
	store domain.Store
}

func NewOfferUsecase(st domain.Store) domain.OfferUsecase {
	return &offerUsecase{store: st}
}

// Accept turns a sent offer into the full match: offer accepted, job
// matched, one assignment en route, one chat thread. Accepting an
// already-accepted offer returns the existing match instead of erroring, so
// a double-tap or a replayed request cannot mint a second assignment.
func (u *offerUsecase) Accept(ctx context.Context, professionalID, offerID string) (*domain.AcceptResult, error) {
	var result *domain.AcceptResult

	err := u.store.Update(func(snap *domain.Snapshot) error {
		offer := snap.OfferByID(offerID)
		if offer == nil {
			return apperror.NotFound("Offer not found")
		}
		if offer.ProfessionalID != professionalID {
			return apperror.Forbidden("This offer belongs to another professional")
		}

		if offer.Status == domain.OfferStatusAccepted {
			if existing := snap.AssignmentByJob(offer.JobID); existing != nil {
				result = buildAcceptResult(snap, offer.JobID, offer)
				return nil
			}
		}
		if offer.Status != domain.OfferStatusSent {
			return apperror.Conflict("Offer is no longer open")
		}

		res, err := matchJob(snap, offer.JobID, professionalID)
		if err != nil {
			return err
		}
		offer.Status = domain.OfferStatusAccepted
		accepted := *offer
		res.Offer = &accepted
		result = res
		return nil
	},
		domain.Change{Kind: domain.ChangeOffer, ID: offerID},
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AcceptJob takes an open or distributed job directly. An accepted offer
// record is minted on the fly so the history reads the same either way.
func (u *offerUsecase) AcceptJob(ctx context.Context, professionalID, jobID string) (*domain.AcceptResult, error) {
	var result *domain.AcceptResult
	err := u.store.Update(func(snap *domain.Snapshot) error {
		res, err := matchJob(snap, jobID, professionalID)
		if err != nil {
			return err
		}
		offer := domain.JobOffer{
			ID:             uuid.NewString(),
			JobID:          jobID,
			ProfessionalID: professionalID,
			Status:         domain.OfferStatusAccepted,
			SentAt:         time.Now(),
		}
		snap.JobOffers = append(snap.JobOffers, offer)
		res.Offer = &offer
		result = res
		return nil
	}, domain.Change{Kind: domain.ChangeJob, ID: jobID})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// matchJob applies the shared acceptance effects against the working
// snapshot. Guards: job takeable, no assignment yet for the job, one active
// assignment per professional, professional approved.
func matchJob(snap *domain.Snapshot, jobID, professionalID string) (*domain.AcceptResult, error) {
	job := snap.JobByID(jobID)
	if job == nil {
		return nil, apperror.NotFound("Job not found")
	}
	if !domain.CanTransitionJob(job.Status, domain.JobStatusMatched) {
		return nil, apperror.Conflict("Job can no longer be taken")
	}
	if snap.AssignmentByJob(jobID) != nil {
		return nil, apperror.Conflict("Job already has a professional assigned")
	}

	prof := snap.ProfessionalByUserID(professionalID)
	if prof == nil {
		return nil, apperror.NotFound("Professional profile not found")
	}
	if prof.ApprovalStatus != domain.ApprovalApproved {
		return nil, apperror.Forbidden("Profile pending admin approval")
	}
	if snap.ActiveAssignmentFor(professionalID) != nil {
		return nil, apperror.Conflict("You already have an active job")
	}

	job.Status = domain.JobStatusMatched

	now := time.Now()
	assignment := domain.JobAssignment{
		ID:             uuid.NewString(),
		JobID:          jobID,
		CompanyID:      job.CompanyID,
		ProfessionalID: professionalID,
		Status:         domain.AssignmentEnRoute,
		LastLat:        prof.GeoLat,
		LastLng:        prof.GeoLng,
		UpdatedAt:      now,
	}
	snap.JobAssignments = append(snap.JobAssignments, assignment)

	thread := domain.ChatThread{
		ID:             uuid.NewString(),
		JobID:          jobID,
		CompanyID:      job.CompanyID,
		ProfessionalID: professionalID,
		CreatedAt:      now,
	}
	snap.ChatThreads = append(snap.ChatThreads, thread)

	return buildAcceptResult(snap, jobID, nil), nil
}

// buildAcceptResult copies the match entities out of the working snapshot so
// the caller holds no pointers into live store state.
func buildAcceptResult(snap *domain.Snapshot, jobID string, offer *domain.JobOffer) *domain.AcceptResult {
	res := &domain.AcceptResult{}
	if offer != nil {
		o := *offer
		res.Offer = &o
	}
	if job := snap.JobByID(jobID); job != nil {
		j := *job
		res.Job = &j
	}
	if a := snap.AssignmentByJob(jobID); a != nil {
		cp := *a
		res.Assignment = &cp
	}
	if t := snap.ThreadByJob(jobID); t != nil {
		cp := *t
		res.Thread = &cp
	}
	return res
}

func (u *offerUsecase) Decline(ctx context.Context, professionalID, offerID string) error {
	return u.store.Update(func(snap *domain.Snapshot) error {
		offer := snap.OfferByID(offerID)
		if offer == nil {
			return apperror.NotFound("Offer not found")
		}
		if offer.ProfessionalID != professionalID {
			return apperror.Forbidden("This offer belongs to another professional")
		}
		if offer.Status != domain.OfferStatusSent {
			return apperror.Conflict("Offer is no longer open")
		}
		// The job itself stays available to everyone else.
		offer.Status = domain.OfferStatusDeclined
		return nil
	}, domain.Change{Kind: domain.ChangeOffer, ID: offerID})
}

// Remove deletes a declined offer for good, the one per-entity deletion the
// product allows.
func (u *offerUsecase) Remove(ctx context.Context, professionalID, offerID string) error {
	return u.store.Update(func(snap *domain.Snapshot) error {
		for i := range snap.JobOffers {
			o := &snap.JobOffers[i]
			if o.ID != offerID {
				continue
			}
			if o.ProfessionalID != professionalID {
				return apperror.Forbidden("This offer belongs to another professional")
			}
			if o.Status != domain.OfferStatusDeclined {
				return apperror.Conflict("Only declined offers can be removed")
			}
			snap.JobOffers = append(snap.JobOffers[:i], snap.JobOffers[i+1:]...)
			return nil
		}
		return apperror.NotFound("Offer not found")
	}, domain.Change{Kind: domain.ChangeOffer, ID: offerID})
}

func (u *offerUsecase) Expire(ctx context.Context, offerID string) error {
	return u.store.Update(func(snap *domain.Snapshot) error {
		offer := snap.OfferByID(offerID)
		if offer == nil {
			return apperror.NotFound("Offer not found")
		}
		if offer.Status != domain.OfferStatusSent {
			return apperror.Conflict("Offer is no longer open")
		}
		offer.Status = domain.OfferStatusExpired
		return nil
	}, domain.Change{Kind: domain.ChangeOffer, ID: offerID})
}

func (u *offerUsecase) ListForProfessional(ctx context.Context, professionalID, status string) ([]domain.OfferWithJob, error) {
	out := []domain.OfferWithJob{}
	u.store.View(func(snap *domain.Snapshot) {
		for _, o := range snap.JobOffers {
			if o.ProfessionalID != professionalID {
				continue
			}
			if status != "" && o.Status != status {
				continue
			}
			job := snap.JobByID(o.JobID)
			if job == nil {
				continue
			}
			item := domain.OfferWithJob{JobOffer: o, Job: *job}
			if company := snap.CompanyByUserID(job.CompanyID); company != nil {
				cp := *company
				item.Company = &cp
			}
			out = append(out, item)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	return out, nil
}
