package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"meup-backend/internal/domain"
	"meup-backend/internal/usecase"
)

func TestAcceptOffer(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	offerUC := usecase.NewOfferUsecase(st)

	result := matchedJob(t, st)

	t.Run("Should create the full match", func(t *testing.T) {
		assert.Equal(t, domain.OfferStatusAccepted, result.Offer.Status)
		assert.Equal(t, domain.JobStatusMatched, result.Job.Status)
		assert.Equal(t, domain.AssignmentEnRoute, result.Assignment.Status)
		assert.NotNil(t, result.Thread)

		st.View(func(snap *domain.Snapshot) {
			// Assignment starts at the professional's home coordinate.
			prof := snap.ProfessionalByUserID("prof-1")
			assert.Equal(t, prof.GeoLat, result.Assignment.LastLat)
			assert.Equal(t, prof.GeoLng, result.Assignment.LastLng)
		})
	})

	t.Run("Should be idempotent on double accept", func(t *testing.T) {
		again, err := offerUC.Accept(ctx, "prof-1", result.Offer.ID)
		assert.NoError(t, err)
		assert.Equal(t, result.Assignment.ID, again.Assignment.ID)

		st.View(func(snap *domain.Snapshot) {
			assert.Len(t, snap.JobAssignments, 1)
			assert.Len(t, snap.ChatThreads, 1)
		})
	})

	t.Run("Should refuse accepting someone else's offer", func(t *testing.T) {
		_, err := offerUC.Accept(ctx, "prof-9", result.Offer.ID)
		assert.Error(t, err)
	})

	t.Run("Should refuse a second job while one is active", func(t *testing.T) {
		jobUC := usecase.NewJobUsecase(st)
		other, err := jobUC.CreateJob(ctx, "emp-1", &domain.JobRequest{
			Title: "Outra vaga", SkillRequired: "caixa", ValueOffered: 90, DurationHours: 2,
		}, nil)
		assert.NoError(t, err)

		_, err = offerUC.AcceptJob(ctx, "prof-1", other.ID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "active job")
	})
}

func TestAcceptJobDirectly(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	jobUC := usecase.NewJobUsecase(st)
	offerUC := usecase.NewOfferUsecase(st)

	job, err := jobUC.CreateJob(ctx, "emp-1", &domain.JobRequest{
		Title: "Caixa", SkillRequired: "caixa", ValueOffered: 150, DurationHours: 4,
	}, nil)
	assert.NoError(t, err)

	t.Run("Should mint an accepted offer on the fly", func(t *testing.T) {
		result, err := offerUC.AcceptJob(ctx, "prof-1", job.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferStatusAccepted, result.Offer.Status)
		assert.Equal(t, domain.JobStatusMatched, result.Job.Status)
	})

	t.Run("Should refuse once the job has an assignment", func(t *testing.T) {
		_, err := offerUC.AcceptJob(ctx, "prof-1", job.ID)
		assert.Error(t, err)
	})
}

func TestDeclineAndRemove(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	jobUC := usecase.NewJobUsecase(st)
	offerUC := usecase.NewOfferUsecase(st)

	job, err := jobUC.CreateJob(ctx, "emp-1", &domain.JobRequest{
		Title: "Caixa", SkillRequired: "caixa", ValueOffered: 150, DurationHours: 4,
	}, []string{"prof-1"})
	assert.NoError(t, err)

	offers, err := offerUC.ListForProfessional(ctx, "prof-1", domain.OfferStatusSent)
	assert.NoError(t, err)
	assert.Len(t, offers, 1)
	offerID := offers[0].ID

	t.Run("Should refuse removing an offer that is still open", func(t *testing.T) {
		assert.Error(t, offerUC.Remove(ctx, "prof-1", offerID))
	})

	t.Run("Should decline without touching the job", func(t *testing.T) {
		assert.NoError(t, offerUC.Decline(ctx, "prof-1", offerID))

		got, err := jobUC.GetJob(ctx, job.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusDistributed, got.Status)
	})

	t.Run("Should refuse declining twice", func(t *testing.T) {
		assert.Error(t, offerUC.Decline(ctx, "prof-1", offerID))
	})

	t.Run("Should remove the declined offer for good", func(t *testing.T) {
		assert.NoError(t, offerUC.Remove(ctx, "prof-1", offerID))

		offers, err := offerUC.ListForProfessional(ctx, "prof-1", "")
		assert.NoError(t, err)
		assert.Empty(t, offers)
	})
}
