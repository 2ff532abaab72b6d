package domain

import (
	"context"
	"time"
)

// Rating is created once per job per rater, only after the job finished.
type Rating struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	RaterID   string    `json:"rater_id"`
	RateeID   string    `json:"ratee_id"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingInput is the submission form.
type RatingInput struct {
	JobID   string `json:"job_id" validate:"required"`
	Stars   int    `json:"stars" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

type RatingUsecase interface {
	// Rate records the rater's stars for the other party of a finished job.
	// The ratee is derived from the assignment, never taken from the client.
	Rate(ctx context.Context, raterID string, in *RatingInput) (*Rating, error)
	ListForUser(ctx context.Context, userID string) ([]Rating, error)
}
