package domain

import (
	"context"
	"time"
)

// ChatThread is created once per job at acceptance, binding the company and
// the professional. Messages are append-only; no delivery or read receipts.
type ChatThread struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	CompanyID      string    `json:"company_id"`
	ProfessionalID string    `json:"professional_id"`
	CreatedAt      time.Time `json:"created_at"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	SenderID  string    `json:"sender_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatUsecase interface {
	// Post appends a message to the job's thread. Only the two thread
	// participants may write.
	Post(ctx context.Context, senderID, jobID, text string) (*ChatMessage, error)
	ListByJob(ctx context.Context, userID, jobID string) ([]ChatMessage, error)
}
