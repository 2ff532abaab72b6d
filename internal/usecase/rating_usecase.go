package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type ratingUsecase struct {
	store    domain.Store
	validate *validator.Validate
}

func NewRatingUsecase(st domain.Store, validate *validator.Validate) domain.RatingUsecase {
	return &ratingUsecase{store: st, validate: validate}
}

// Rate records the stars the rater gives the other party of a finished job.
// The ratee comes from the assignment, so a client cannot rate arbitrary
// users, and a professional ratee gets their average recomputed in the same
// write.
func (u *ratingUsecase) Rate(ctx context.Context, raterID string, in *domain.RatingInput) (*domain.Rating, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	var out *domain.Rating
	err := u.store.Update(func(snap *domain.Snapshot) error {
		job := snap.JobByID(in.JobID)
		if job == nil {
			return apperror.NotFound("Job not found")
		}
		if job.Status != domain.JobStatusFinished {
			return apperror.Conflict("Only finished jobs can be rated")
		}

		assignment := snap.AssignmentByJob(in.JobID)
		if assignment == nil {
			return apperror.NotFound("Assignment not found")
		}

		var rateeID string
		switch raterID {
		case assignment.CompanyID:
			rateeID = assignment.ProfessionalID
		case assignment.ProfessionalID:
			rateeID = assignment.CompanyID
		default:
			return apperror.Forbidden("Only the match participants can rate this job")
		}

		if snap.HasRating(in.JobID, raterID) {
			return apperror.Conflict("You already rated this job")
		}

		rating := domain.Rating{
			ID:        uuid.NewString(),
			JobID:     in.JobID,
			RaterID:   raterID,
			RateeID:   rateeID,
			Stars:     in.Stars,
			Comment:   in.Comment,
			CreatedAt: time.Now(),
		}
		snap.Ratings = append(snap.Ratings, rating)

		if prof := snap.ProfessionalByUserID(rateeID); prof != nil {
			avg, _ := snap.RatingStats(rateeID)
			prof.RatingAvg = avg
		}

		out = &rating
		return nil
	}, domain.Change{Kind: domain.ChangeRating, ID: in.JobID})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *ratingUsecase) ListForUser(ctx context.Context, userID string) ([]domain.Rating, error) {
	out := []domain.Rating{}
	u.store.View(func(snap *domain.Snapshot) {
		for _, r := range snap.Ratings {
			if r.RateeID == userID || r.RaterID == userID {
				out = append(out, r)
			}
		}
	})
	return out, nil
}
