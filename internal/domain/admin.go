package domain

import "context"

// AdminStats feeds the admin dashboard summary.
type AdminStats struct {
	TotalUsers           int `json:"total_users"`
	TotalCompanies       int `json:"total_companies"`
	TotalProfessionals   int `json:"total_professionals"`
	PendingCompanies     int `json:"pending_companies"`
	PendingProfessionals int `json:"pending_professionals"`
	TotalJobs            int `json:"total_jobs"`
	ActiveJobs           int `json:"active_jobs"`
	FinishedJobs         int `json:"finished_jobs"`
}

// AdminUser joins the base profile with its role payload for the admin
// listing and audit views.
type AdminUser struct {
	Profile Profile     `json:"profile"`
	Extra   RoleProfile `json:"extra"`
}

type AdminUsecase interface {
	ListUsers(ctx context.Context, search, roleFilter string) ([]AdminUser, error)
	GetUser(ctx context.Context, userID string) (*AdminUser, error)
	// CreateUser registers an account on behalf of the admin; same rules as
	// self-registration but allowed while authenticated as admin.
	CreateUser(ctx context.Context, reg *Registration) (*Profile, error)
	// ToggleVerification flips company verification, or flips professional
	// docs verification and approval together.
	ToggleVerification(ctx context.Context, userID string) (*AdminUser, error)
	SetSuspended(ctx context.Context, userID string, suspended bool) error
	ListJobs(ctx context.Context) ([]JobRequest, error)
	Stats(ctx context.Context) (*AdminStats, error)
	// Reset wipes the snapshot and reseeds the fixed demo accounts.
	Reset(ctx context.Context) error
}
