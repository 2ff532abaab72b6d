package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"meup-backend/internal/domain"
	"meup-backend/internal/usecase"
)

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	uc := usecase.NewJobUsecase(st)

	t.Run("Should reject missing title and non-positive values", func(t *testing.T) {
		_, err := uc.CreateJob(ctx, "emp-1", &domain.JobRequest{ValueOffered: 100, DurationHours: 4}, nil)
		assert.Error(t, err)

		_, err = uc.CreateJob(ctx, "emp-1", &domain.JobRequest{Title: "Caixa", ValueOffered: 0, DurationHours: 4}, nil)
		assert.Error(t, err)

		_, err = uc.CreateJob(ctx, "emp-1", &domain.JobRequest{Title: "Caixa", ValueOffered: 100, DurationHours: 0}, nil)
		assert.Error(t, err)
	})

	t.Run("Should default coordinates from the company profile", func(t *testing.T) {
		job, err := uc.CreateJob(ctx, "emp-1", &domain.JobRequest{
			Title: "Caixa", SkillRequired: "caixa", ValueOffered: 150, DurationHours: 4,
		}, nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusOpen, job.Status)

		st.View(func(snap *domain.Snapshot) {
			company := snap.CompanyByUserID("emp-1")
			assert.Equal(t, company.GeoLat, job.GeoLat)
			assert.Equal(t, company.GeoLng, job.GeoLng)
		})
	})

	t.Run("Should be born distributed when targeted", func(t *testing.T) {
		job, err := uc.CreateJob(ctx, "emp-1", &domain.JobRequest{
			Title: "Atendente", SkillRequired: "atendente", ValueOffered: 120, DurationHours: 4,
		}, []string{"prof-1", "nobody"})
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusDistributed, job.Status)

		st.View(func(snap *domain.Snapshot) {
			var offers []domain.JobOffer
			for _, o := range snap.JobOffers {
				if o.JobID == job.ID {
					offers = append(offers, o)
				}
			}
			// Unknown target ids are dropped silently.
			assert.Len(t, offers, 1)
			assert.Equal(t, "prof-1", offers[0].ProfessionalID)
			assert.Equal(t, domain.OfferStatusSent, offers[0].Status)
		})
	})

	t.Run("Should fail for unknown company", func(t *testing.T) {
		_, err := uc.CreateJob(ctx, "ghost", &domain.JobRequest{
			Title: "Caixa", ValueOffered: 100, DurationHours: 4,
		}, nil)
		assert.Error(t, err)
	})
}

func TestDistribute(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	uc := usecase.NewJobUsecase(st)

	job, err := uc.CreateJob(ctx, "emp-1", &domain.JobRequest{
		Title: "Caixa", SkillRequired: "caixa", ValueOffered: 150, DurationHours: 4,
	}, nil)
	assert.NoError(t, err)

	t.Run("Should refuse distribution by another company", func(t *testing.T) {
		_, err := uc.Distribute(ctx, "emp-2", job.ID)
		assert.Error(t, err)
	})

	t.Run("Should fan out only to approved skilled professionals", func(t *testing.T) {
		// An unapproved professional with the skill must be skipped.
		err := st.Update(func(snap *domain.Snapshot) error {
			snap.Profiles = append(snap.Profiles, domain.Profile{ID: "prof-2", Role: domain.RoleProfessional, Email: "p2@prof.com"})
			snap.ProfessionalProfiles = append(snap.ProfessionalProfiles, domain.ProfessionalProfile{
				UserID: "prof-2", ApprovalStatus: domain.ApprovalPending, Skills: []string{"caixa"},
			})
			return nil
		}, domain.Change{Kind: domain.ChangeProfile, ID: "prof-2"})
		assert.NoError(t, err)

		offers, err := uc.Distribute(ctx, "emp-1", job.ID)
		assert.NoError(t, err)
		assert.Len(t, offers, 1)
		assert.Equal(t, "prof-1", offers[0].ProfessionalID)

		got, err := uc.GetJob(ctx, job.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusDistributed, got.Status)
	})

	t.Run("Should refuse distributing twice", func(t *testing.T) {
		_, err := uc.Distribute(ctx, "emp-1", job.ID)
		assert.Error(t, err)
	})
}

func TestCancelJob(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	uc := usecase.NewJobUsecase(st)

	job, err := uc.CreateJob(ctx, "emp-1", &domain.JobRequest{
		Title: "Caixa", SkillRequired: "caixa", ValueOffered: 150, DurationHours: 4,
	}, nil)
	assert.NoError(t, err)
	_, err = uc.Distribute(ctx, "emp-1", job.ID)
	assert.NoError(t, err)

	t.Run("Should cancel and expire outstanding offers", func(t *testing.T) {
		assert.NoError(t, uc.Cancel(ctx, "emp-1", job.ID))

		st.View(func(snap *domain.Snapshot) {
			assert.Equal(t, domain.JobStatusCancelled, snap.JobByID(job.ID).Status)
			for _, o := range snap.JobOffers {
				if o.JobID == job.ID {
					assert.Equal(t, domain.OfferStatusExpired, o.Status)
				}
			}
		})
	})

	t.Run("Should refuse cancelling a terminal job", func(t *testing.T) {
		assert.Error(t, uc.Cancel(ctx, "emp-1", job.ID))
	})
}

func TestListAvailable(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	uc := usecase.NewJobUsecase(st)

	openJob, err := uc.CreateJob(ctx, "emp-1", &domain.JobRequest{
		Title: "Aberta", SkillRequired: "caixa", ValueOffered: 100, DurationHours: 4,
	}, nil)
	assert.NoError(t, err)

	targeted, err := uc.CreateJob(ctx, "emp-1", &domain.JobRequest{
		Title: "Direcionada", SkillRequired: "caixa", ValueOffered: 100, DurationHours: 4,
	}, []string{"prof-1"})
	assert.NoError(t, err)

	t.Run("Should list open jobs and distributed jobs with a sent offer", func(t *testing.T) {
		jobs, err := uc.ListAvailable(ctx, "prof-1")
		assert.NoError(t, err)
		ids := map[string]bool{}
		for _, j := range jobs {
			ids[j.ID] = true
			assert.Equal(t, "Padaria Copacabana", j.CompanyName)
		}
		assert.True(t, ids[openJob.ID])
		assert.True(t, ids[targeted.ID])
	})

	t.Run("Should return nothing for unapproved professionals", func(t *testing.T) {
		err := st.Update(func(snap *domain.Snapshot) error {
			snap.ProfessionalByUserID("prof-1").ApprovalStatus = domain.ApprovalPending
			return nil
		}, domain.Change{Kind: domain.ChangeProfile, ID: "prof-1"})
		assert.NoError(t, err)

		jobs, err := uc.ListAvailable(ctx, "prof-1")
		assert.NoError(t, err)
		assert.Empty(t, jobs)
	})
}

func TestJobTransitionRules(t *testing.T) {
	t.Run("Should only move forward", func(t *testing.T) {
		assert.True(t, domain.CanTransitionJob(domain.JobStatusOpen, domain.JobStatusDistributed))
		assert.True(t, domain.CanTransitionJob(domain.JobStatusOpen, domain.JobStatusMatched))
		assert.False(t, domain.CanTransitionJob(domain.JobStatusMatched, domain.JobStatusOpen))
		assert.False(t, domain.CanTransitionJob(domain.JobStatusFinished, domain.JobStatusMatched))
	})

	t.Run("Should allow cancel only from non-terminal states", func(t *testing.T) {
		assert.True(t, domain.CanTransitionJob(domain.JobStatusOpen, domain.JobStatusCancelled))
		assert.True(t, domain.CanTransitionJob(domain.JobStatusInProgress, domain.JobStatusCancelled))
		assert.False(t, domain.CanTransitionJob(domain.JobStatusFinished, domain.JobStatusCancelled))
		assert.False(t, domain.CanTransitionJob(domain.JobStatusCancelled, domain.JobStatusCancelled))
	})
}
