package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type jobUsecase struct {
	store domain.Store
}

func NewJobUsecase(st domain.Store) domain.JobUsecase {
	return &jobUsecase{store: st}
}

func (u *jobUsecase) CreateJob(ctx context.Context, companyID string, job *domain.JobRequest, targetIDs []string) (*domain.JobRequest, error) {
	if job.Title == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	if job.ValueOffered <= 0 {
		return nil, apperror.BadRequest("ValueOffered must be positive")
	}
	if job.DurationHours <= 0 {
		return nil, apperror.BadRequest("DurationHours must be positive")
	}

	job.ID = uuid.NewString()
	job.CompanyID = companyID
	job.CreatedAt = time.Now()
	if job.DateStart.IsZero() {
		job.DateStart = job.CreatedAt
	}
	job.Status = domain.JobStatusOpen
	if len(targetIDs) > 0 {
		// Pre-addressed to specific professionals: born distributed.
		job.Status = domain.JobStatusDistributed
	}

	changes := []domain.Change{{Kind: domain.ChangeJob, ID: job.ID}}
	err := u.store.Update(func(snap *domain.Snapshot) error {
		company := snap.CompanyByUserID(companyID)
		if company == nil {
			return apperror.NotFound("Company profile not found")
		}
		if job.GeoLat == 0 && job.GeoLng == 0 {
			job.GeoLat, job.GeoLng = company.GeoLat, company.GeoLng
			if job.AddressText == "" {
				job.AddressText = company.FullAddress
			}
		}
		snap.JobRequests = append(snap.JobRequests, *job)

		for _, profID := range targetIDs {
			if snap.ProfessionalByUserID(profID) == nil {
				continue
			}
			offer := domain.JobOffer{
				ID:             uuid.NewString(),
				JobID:          job.ID,
				ProfessionalID: profID,
				Status:         domain.OfferStatusSent,
				SentAt:         time.Now(),
			}
			snap.JobOffers = append(snap.JobOffers, offer)
		}
		return nil
	}, changes...)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Distribute fans the job out as one offer per approved professional holding
// the required skill. Professionals already occupied by an active assignment
// are skipped.
func (u *jobUsecase) Distribute(ctx context.Context, companyID, jobID string) ([]domain.JobOffer, error) {
	var created []domain.JobOffer
	err := u.store.Update(func(snap *domain.Snapshot) error {
		job := snap.JobByID(jobID)
		if job == nil {
			return apperror.NotFound("Job not found")
		}
		if job.CompanyID != companyID {
			return apperror.Forbidden("You can only distribute your own jobs")
		}
		if !domain.CanTransitionJob(job.Status, domain.JobStatusDistributed) {
			return apperror.Conflict("Job is not open for distribution")
		}

		for i := range snap.ProfessionalProfiles {
			prof := &snap.ProfessionalProfiles[i]
			if prof.ApprovalStatus != domain.ApprovalApproved || !prof.HasSkill(job.SkillRequired) {
				continue
			}
			if snap.ActiveAssignmentFor(prof.UserID) != nil {
				continue
			}
			offer := domain.JobOffer{
				ID:             uuid.NewString(),
				JobID:          jobID,
				ProfessionalID: prof.UserID,
				Status:         domain.OfferStatusSent,
				SentAt:         time.Now(),
			}
			snap.JobOffers = append(snap.JobOffers, offer)
			created = append(created, offer)
		}

		job.Status = domain.JobStatusDistributed
		return nil
	}, domain.Change{Kind: domain.ChangeJob, ID: jobID})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Cancel moves the job to cancelled from any non-terminal state and expires
// its outstanding offers.
func (u *jobUsecase) Cancel(ctx context.Context, companyID, jobID string) error {
	return u.store.Update(func(snap *domain.Snapshot) error {
		job := snap.JobByID(jobID)
		if job == nil {
			return apperror.NotFound("Job not found")
		}
		if job.CompanyID != companyID {
			return apperror.Forbidden("You can only cancel your own jobs")
		}
		if !domain.CanTransitionJob(job.Status, domain.JobStatusCancelled) {
			return apperror.Conflict("Job already reached a terminal state")
		}
		job.Status = domain.JobStatusCancelled

		for i := range snap.JobOffers {
			o := &snap.JobOffers[i]
			if o.JobID == jobID && o.Status == domain.OfferStatusSent {
				o.Status = domain.OfferStatusExpired
			}
		}
		return nil
	}, domain.Change{Kind: domain.ChangeJob, ID: jobID})
}

func (u *jobUsecase) GetJob(ctx context.Context, jobID string) (*domain.JobWithCompany, error) {
	var out *domain.JobWithCompany
	u.store.View(func(snap *domain.Snapshot) {
		job := snap.JobByID(jobID)
		if job == nil {
			return
		}
		out = joinCompany(snap, job)
	})
	if out == nil {
		return nil, apperror.NotFound("Job not found")
	}
	return out, nil
}

func (u *jobUsecase) ListByCompany(ctx context.Context, companyID string) ([]domain.JobRequest, error) {
	out := []domain.JobRequest{}
	u.store.View(func(snap *domain.Snapshot) {
		for _, j := range snap.JobRequests {
			if j.CompanyID == companyID {
				out = append(out, j)
			}
		}
	})
	// Newest first, matching the dashboard ordering.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListAvailable returns jobs a professional could still take: open jobs plus
// distributed jobs holding a sent offer for them, minus anything already
// assigned.
func (u *jobUsecase) ListAvailable(ctx context.Context, professionalID string) ([]domain.JobWithCompany, error) {
	out := []domain.JobWithCompany{}
	u.store.View(func(snap *domain.Snapshot) {
		prof := snap.ProfessionalByUserID(professionalID)
		if prof == nil || prof.ApprovalStatus != domain.ApprovalApproved {
			return
		}

		offered := map[string]bool{}
		for _, o := range snap.JobOffers {
			if o.ProfessionalID == professionalID && o.Status == domain.OfferStatusSent {
				offered[o.JobID] = true
			}
		}

		for i := range snap.JobRequests {
			job := &snap.JobRequests[i]
			if snap.AssignmentByJob(job.ID) != nil {
				continue
			}
			takeable := job.Status == domain.JobStatusOpen ||
				(job.Status == domain.JobStatusDistributed && offered[job.ID])
			if !takeable {
				continue
			}
			out = append(out, *joinCompany(snap, job))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func joinCompany(snap *domain.Snapshot, job *domain.JobRequest) *domain.JobWithCompany {
	out := &domain.JobWithCompany{JobRequest: *job}
	if company := snap.CompanyByUserID(job.CompanyID); company != nil {
		out.CompanyName = company.CompanyName
		out.CompanyVerified = company.IsVerified
		avg, _ := snap.RatingStats(company.UserID)
		out.CompanyRatingAvg = avg
		out.CompanyJobsClosed = snap.FinishedJobsByCompany(company.UserID)
	}
	return out
}
