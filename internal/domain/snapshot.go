package domain

import (
	"context"
	"encoding/json"
)

// ChangeKind discriminates typed change notifications published after every
// store mutation, so subscribers re-read only what they care about.
type ChangeKind string

const (
	ChangeProfile      ChangeKind = "profile"
	ChangeCompany      ChangeKind = "company_profile"
	ChangeProfessional ChangeKind = "professional_profile"
	ChangeJob          ChangeKind = "job_request"
	ChangeOffer        ChangeKind = "job_offer"
	ChangeAssignment   ChangeKind = "job_assignment"
	ChangeChat         ChangeKind = "chat_message"
	ChangeRating       ChangeKind = "rating"
	// ChangeSnapshot signals a wholesale replacement (cloud pull, reset).
	ChangeSnapshot ChangeKind = "snapshot"
)

type Change struct {
	Kind ChangeKind `json:"kind"`
	ID   string     `json:"id,omitempty"`
}

// Snapshot is the complete aggregate of all entities, persisted and mirrored
// as a single unit. LastUpdate (epoch millis) is the logical clock compared
// during cloud sync.
type Snapshot struct {
	LastUpdate           int64                 `json:"last_update"`
	Profiles             []Profile             `json:"profiles"`
	CompanyProfiles      []CompanyProfile      `json:"company_profiles"`
	ProfessionalProfiles []ProfessionalProfile `json:"professional_profiles"`
	JobRequests          []JobRequest          `json:"job_requests"`
	JobOffers            []JobOffer            `json:"job_offers"`
	JobAssignments       []JobAssignment       `json:"job_assignments"`
	ChatThreads          []ChatThread          `json:"chat_threads"`
	ChatMessages         []ChatMessage         `json:"chat_messages"`
	Ratings              []Rating              `json:"ratings"`
}

// NewSnapshot returns an empty-initialized snapshot. Collections are non-nil
// so the serialized form always carries every key.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Profiles:             []Profile{},
		CompanyProfiles:      []CompanyProfile{},
		ProfessionalProfiles: []ProfessionalProfile{},
		JobRequests:          []JobRequest{},
		JobOffers:            []JobOffer{},
		JobAssignments:       []JobAssignment{},
		ChatThreads:          []ChatThread{},
		ChatMessages:         []ChatMessage{},
		Ratings:              []Rating{},
	}
}

// Clone deep-copies the snapshot through its JSON form.
func (s *Snapshot) Clone() *Snapshot {
	raw, err := json.Marshal(s)
	if err != nil {
		return NewSnapshot()
	}
	out := NewSnapshot()
	if err := json.Unmarshal(raw, out); err != nil {
		return NewSnapshot()
	}
	return out
}

// Typed lookup helpers. Pointers point into the snapshot's own slices so
// Update callbacks can mutate in place.

func (s *Snapshot) ProfileByID(id string) *Profile {
	for i := range s.Profiles {
		if s.Profiles[i].ID == id {
			return &s.Profiles[i]
		}
	}
	return nil
}

func (s *Snapshot) ProfileByEmail(email string) *Profile {
	for i := range s.Profiles {
		if s.Profiles[i].Email == email {
			return &s.Profiles[i]
		}
	}
	return nil
}

func (s *Snapshot) CompanyByUserID(userID string) *CompanyProfile {
	for i := range s.CompanyProfiles {
		if s.CompanyProfiles[i].UserID == userID {
			return &s.CompanyProfiles[i]
		}
	}
	return nil
}

func (s *Snapshot) ProfessionalByUserID(userID string) *ProfessionalProfile {
	for i := range s.ProfessionalProfiles {
		if s.ProfessionalProfiles[i].UserID == userID {
			return &s.ProfessionalProfiles[i]
		}
	}
	return nil
}

func (s *Snapshot) JobByID(id string) *JobRequest {
	for i := range s.JobRequests {
		if s.JobRequests[i].ID == id {
			return &s.JobRequests[i]
		}
	}
	return nil
}

func (s *Snapshot) OfferByID(id string) *JobOffer {
	for i := range s.JobOffers {
		if s.JobOffers[i].ID == id {
			return &s.JobOffers[i]
		}
	}
	return nil
}

func (s *Snapshot) AssignmentByJob(jobID string) *JobAssignment {
	for i := range s.JobAssignments {
		if s.JobAssignments[i].JobID == jobID {
			return &s.JobAssignments[i]
		}
	}
	return nil
}

// ActiveAssignmentFor returns the professional's current non-finished
// assignment, if any. At most one should exist; the accept flow enforces it.
func (s *Snapshot) ActiveAssignmentFor(professionalID string) *JobAssignment {
	for i := range s.JobAssignments {
		a := &s.JobAssignments[i]
		if a.ProfessionalID == professionalID && a.Active() {
			return a
		}
	}
	return nil
}

func (s *Snapshot) ThreadByJob(jobID string) *ChatThread {
	for i := range s.ChatThreads {
		if s.ChatThreads[i].JobID == jobID {
			return &s.ChatThreads[i]
		}
	}
	return nil
}

func (s *Snapshot) MessagesByThread(threadID string) []ChatMessage {
	out := []ChatMessage{}
	for _, m := range s.ChatMessages {
		if m.ThreadID == threadID {
			out = append(out, m)
		}
	}
	return out
}

// HasRating reports whether the rater already rated this job.
func (s *Snapshot) HasRating(jobID, raterID string) bool {
	for _, r := range s.Ratings {
		if r.JobID == jobID && r.RaterID == raterID {
			return true
		}
	}
	return false
}

// RatingStats returns the average stars and count received by a user.
func (s *Snapshot) RatingStats(rateeID string) (avg float64, count int) {
	var sum int
	for _, r := range s.Ratings {
		if r.RateeID == rateeID {
			sum += r.Stars
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}

// FinishedJobsByCompany counts a company's closed chamados.
func (s *Snapshot) FinishedJobsByCompany(companyID string) int {
	n := 0
	for _, j := range s.JobRequests {
		if j.CompanyID == companyID && j.Status == JobStatusFinished {
			n++
		}
	}
	return n
}

// Store is the typed snapshot store every usecase mutates through. Update
// runs the callback under the store lock, stamps the logical clock, persists
// the whole snapshot and publishes the given changes; a callback error rolls
// the mutation back.
type Store interface {
	View(fn func(*Snapshot))
	Update(fn func(*Snapshot) error, changes ...Change) error
	// Replace swaps in a remote snapshot as-is, without restamping the clock
	// or mirroring back. Used by the cloud sync pull path and reset.
	Replace(snap *Snapshot)
	LastUpdate() int64
}

// SnapshotRepository persists the aggregate under a fixed storage key. Load
// must return an empty-initialized snapshot, not an error, when nothing is
// persisted or the payload fails to parse.
type SnapshotRepository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
