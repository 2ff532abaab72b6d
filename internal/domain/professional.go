package domain

// Approval status of a professional, toggled together with DocsVerified by
// the admin audit flow.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type WorkHistory struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Period  string `json:"period"`
}

// ProfessionalProfile is the professional payload owned 1:1 by a Profile
// with RoleProfessional. Created pending, with the profile coordinate used
// as the start point of movement simulations.
type ProfessionalProfile struct {
	UserID         string        `json:"user_id"`
	ApprovalStatus string        `json:"approval_status"`
	Skills         []string      `json:"skills"`
	RatingAvg      float64       `json:"rating_avg"`
	JobsCompleted  int           `json:"jobs_completed"`
	City           string        `json:"city"`
	GeoLat         float64       `json:"geo_lat"`
	GeoLng         float64       `json:"geo_lng"`
	DocsVerified   bool          `json:"docs_verified"`
	Bio            string        `json:"bio,omitempty"`
	Experience     []WorkHistory `json:"experience,omitempty"`
}

// HasSkill reports whether the professional lists the given skill.
func (p *ProfessionalProfile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
