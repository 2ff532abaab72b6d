package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"meup-backend/internal/domain"
	"meup-backend/internal/usecase"
)

func TestAssignmentLifecycle(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	uc := usecase.NewAssignmentUsecase(st)

	match := matchedJob(t, st)
	jobID := match.Job.ID

	t.Run("Should refuse skipping ahead to execution", func(t *testing.T) {
		_, err := uc.Start(ctx, "emp-1", jobID)
		assert.Error(t, err)
	})

	t.Run("Should refuse check-in by another professional", func(t *testing.T) {
		_, err := uc.CheckIn(ctx, "prof-9", jobID)
		assert.Error(t, err)
	})

	t.Run("Should check in to arrived", func(t *testing.T) {
		a, err := uc.CheckIn(ctx, "prof-1", jobID)
		assert.NoError(t, err)
		assert.Equal(t, domain.AssignmentArrived, a.Status)
	})

	t.Run("Should refuse start by another company", func(t *testing.T) {
		_, err := uc.Start(ctx, "emp-9", jobID)
		assert.Error(t, err)
	})

	t.Run("Should start execution and move the job", func(t *testing.T) {
		a, err := uc.Start(ctx, "emp-1", jobID)
		assert.NoError(t, err)
		assert.Equal(t, domain.AssignmentInExecution, a.Status)

		st.View(func(snap *domain.Snapshot) {
			assert.Equal(t, domain.JobStatusInProgress, snap.JobByID(jobID).Status)
		})
	})

	t.Run("Should finish and bump the completed counter", func(t *testing.T) {
		var before int
		st.View(func(snap *domain.Snapshot) {
			before = snap.ProfessionalByUserID("prof-1").JobsCompleted
		})

		a, err := uc.Finish(ctx, "emp-1", jobID)
		assert.NoError(t, err)
		assert.Equal(t, domain.AssignmentFinished, a.Status)

		st.View(func(snap *domain.Snapshot) {
			assert.Equal(t, domain.JobStatusFinished, snap.JobByID(jobID).Status)
			assert.Equal(t, before+1, snap.ProfessionalByUserID("prof-1").JobsCompleted)
		})

		_, err = uc.GetActiveForProfessional(ctx, "prof-1")
		assert.Error(t, err)
	})

	t.Run("Should refuse finishing twice", func(t *testing.T) {
		_, err := uc.Finish(ctx, "emp-1", jobID)
		assert.Error(t, err)
	})
}

func TestAssignmentQueries(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	uc := usecase.NewAssignmentUsecase(st)

	t.Run("Should miss before any match exists", func(t *testing.T) {
		_, err := uc.GetByJob(ctx, "nope")
		assert.Error(t, err)
		_, err = uc.GetActiveForProfessional(ctx, "prof-1")
		assert.Error(t, err)
	})

	match := matchedJob(t, st)

	t.Run("Should find the active assignment both ways", func(t *testing.T) {
		byJob, err := uc.GetByJob(ctx, match.Job.ID)
		assert.NoError(t, err)
		active, err := uc.GetActiveForProfessional(ctx, "prof-1")
		assert.NoError(t, err)
		assert.Equal(t, byJob.ID, active.ID)
	})
}
