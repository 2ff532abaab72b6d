package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type chatUsecase struct {
	store domain.Store
}

func NewChatUsecase(st domain.Store) domain.ChatUsecase {
	return &chatUsecase{store: st}
}

func (u *chatUsecase) Post(ctx context.Context, senderID, jobID, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.BadRequest("Message cannot be empty")
	}

	var out *domain.ChatMessage
	err := u.store.Update(func(snap *domain.Snapshot) error {
		thread := snap.ThreadByJob(jobID)
		if thread == nil {
			return apperror.NotFound("No chat thread for this job")
		}
		if senderID != thread.CompanyID && senderID != thread.ProfessionalID {
			return apperror.Forbidden("Only the match participants can chat")
		}

		msg := domain.ChatMessage{
			ID:        uuid.NewString(),
			ThreadID:  thread.ID,
			SenderID:  senderID,
			Message:   text,
			CreatedAt: time.Now(),
		}
		snap.ChatMessages = append(snap.ChatMessages, msg)
		out = &msg
		return nil
	}, domain.Change{Kind: domain.ChangeChat, ID: jobID})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *chatUsecase) ListByJob(ctx context.Context, userID, jobID string) ([]domain.ChatMessage, error) {
	var msgs []domain.ChatMessage
	var denied error
	u.store.View(func(snap *domain.Snapshot) {
		thread := snap.ThreadByJob(jobID)
		if thread == nil {
			denied = apperror.NotFound("No chat thread for this job")
			return
		}
		if userID != thread.CompanyID && userID != thread.ProfessionalID {
			if p := snap.ProfileByID(userID); p == nil || p.Role != domain.RoleAdmin {
				denied = apperror.Forbidden("Only the match participants can read this chat")
				return
			}
		}
		msgs = snap.MessagesByThread(thread.ID)
	})
	if denied != nil {
		return nil, denied
	}
	return msgs, nil
}
