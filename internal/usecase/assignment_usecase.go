package usecase

import (
	"context"
	"time"

	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type assignmentUsecase struct {
	store domain.Store
}

func NewAssignmentUsecase(st domain.Store) domain.AssignmentUsecase {
	return &assignmentUsecase{store: st}
}

// CheckIn is the professional's manual "estou no local" trigger. The
// movement simulator performs the same flip automatically on proximity;
// whichever happens first wins and the other becomes a no-op conflict.
func (u *assignmentUsecase) CheckIn(ctx context.Context, professionalID, jobID string) (*domain.JobAssignment, error) {
	return u.transition(jobID, domain.AssignmentArrived, func(snap *domain.Snapshot, a *domain.JobAssignment) error {
		if a.ProfessionalID != professionalID {
			return apperror.Forbidden("This assignment belongs to another professional")
		}
		return nil
	})
}

// Start confirms arrival and begins execution. Company only; the job moves
// to in_progress in the same write.
func (u *assignmentUsecase) Start(ctx context.Context, companyID, jobID string) (*domain.JobAssignment, error) {
	return u.transition(jobID, domain.AssignmentInExecution, func(snap *domain.Snapshot, a *domain.JobAssignment) error {
		if a.CompanyID != companyID {
			return apperror.Forbidden("This assignment belongs to another company")
		}
		job := snap.JobByID(jobID)
		if job == nil {
			return apperror.NotFound("Job not found")
		}
		if !domain.CanTransitionJob(job.Status, domain.JobStatusInProgress) {
			return apperror.Conflict("Job cannot start from its current status")
		}
		job.Status = domain.JobStatusInProgress
		return nil
	})
}

// Finish closes the work: assignment and job both reach finished and the
// professional's completed-jobs counter is bumped. The client follows up
// with the rating flow.
func (u *assignmentUsecase) Finish(ctx context.Context, companyID, jobID string) (*domain.JobAssignment, error) {
	return u.transition(jobID, domain.AssignmentFinished, func(snap *domain.Snapshot, a *domain.JobAssignment) error {
		if a.CompanyID != companyID {
			return apperror.Forbidden("This assignment belongs to another company")
		}
		job := snap.JobByID(jobID)
		if job == nil {
			return apperror.NotFound("Job not found")
		}
		if !domain.CanTransitionJob(job.Status, domain.JobStatusFinished) {
			return apperror.Conflict("Job cannot finish from its current status")
		}
		job.Status = domain.JobStatusFinished

		if prof := snap.ProfessionalByUserID(a.ProfessionalID); prof != nil {
			prof.JobsCompleted++
		}
		return nil
	})
}

// transition applies the forward-only assignment step plus extra effects in
// one snapshot write.
func (u *assignmentUsecase) transition(jobID, to string, effects func(*domain.Snapshot, *domain.JobAssignment) error) (*domain.JobAssignment, error) {
	var out *domain.JobAssignment
	err := u.store.Update(func(snap *domain.Snapshot) error {
		a := snap.AssignmentByJob(jobID)
		if a == nil {
			return apperror.NotFound("Assignment not found")
		}
		if !domain.CanTransitionAssignment(a.Status, to) {
			return apperror.Conflict("Invalid assignment transition")
		}
		if err := effects(snap, a); err != nil {
			return err
		}
		a.Status = to
		a.UpdatedAt = time.Now()
		cp := *a
		out = &cp
		return nil
	},
		domain.Change{Kind: domain.ChangeAssignment, ID: jobID},
		domain.Change{Kind: domain.ChangeJob, ID: jobID},
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *assignmentUsecase) GetByJob(ctx context.Context, jobID string) (*domain.JobAssignment, error) {
	var out *domain.JobAssignment
	u.store.View(func(snap *domain.Snapshot) {
		if a := snap.AssignmentByJob(jobID); a != nil {
			cp := *a
			out = &cp
		}
	})
	if out == nil {
		return nil, apperror.NotFound("Assignment not found")
	}
	return out, nil
}

func (u *assignmentUsecase) GetActiveForProfessional(ctx context.Context, professionalID string) (*domain.JobAssignment, error) {
	var out *domain.JobAssignment
	u.store.View(func(snap *domain.Snapshot) {
		if a := snap.ActiveAssignmentFor(professionalID); a != nil {
			cp := *a
			out = &cp
		}
	})
	if out == nil {
		return nil, apperror.NotFound("No active assignment")
	}
	return out, nil
}
