package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrSuspended     = errors.New("profile is suspended")
	ErrBadTransition = errors.New("invalid status transition")
)

// Roles
const (
	RoleAdmin        = "admin"
	RoleCompany      = "company"
	RoleProfessional = "professional"
)

// Profile is the account record shared by every role. The role-specific
// payload lives in CompanyProfile or ProfessionalProfile keyed by UserID.
type Profile struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	PasswordHash string    `json:"password_hash,omitempty"`
	IsSuspended  bool      `json:"is_suspended"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoleProfile is the tagged union over the role-specific payloads. Exactly
// one of Company/Professional is set, matching the Role tag.
type RoleProfile struct {
	Role         string               `json:"role"`
	Company      *CompanyProfile      `json:"company,omitempty"`
	Professional *ProfessionalProfile `json:"professional,omitempty"`
}

type AuthUsecase interface {
	Register(ctx context.Context, reg *Registration) (*Profile, error)
	Login(ctx context.Context, email, password string) (*Profile, string, error)
	GetCurrentUser(ctx context.Context, id string) (*Profile, error)
}

// Registration carries the onboarding form for either role.
type Registration struct {
	Role     string `json:"role" validate:"required,oneof=company professional"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`

	// Company fields
	CompanyName           string  `json:"company_name,omitempty"`
	OwnerName             string  `json:"owner_name,omitempty"`
	TaxID                 string  `json:"tax_id,omitempty"`
	MunicipalRegistration string  `json:"municipal_registration,omitempty"`
	Segment               string  `json:"segment,omitempty"`
	Address               string  `json:"address,omitempty"`
	FullAddress           string  `json:"full_address,omitempty"`
	ZipCode               string  `json:"zip_code,omitempty"`
	CommercialPhone       string  `json:"commercial_phone,omitempty"`
	GeoLat                float64 `json:"geo_lat,omitempty"`
	GeoLng                float64 `json:"geo_lng,omitempty"`

	// Professional fields
	Skills []string `json:"skills,omitempty"`
	City   string   `json:"city,omitempty"`
	Bio    string   `json:"bio,omitempty"`
}
