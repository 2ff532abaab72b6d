package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"meup-backend/internal/domain"
	"meup-backend/internal/store"
	"meup-backend/pkg/apperror"
	"meup-backend/pkg/audit"
)

type authUsecase struct {
	store     domain.Store
	validate  *validator.Validate
	jwtSecret []byte
	audit     *audit.Logger
}

func NewAuthUsecase(st domain.Store, validate *validator.Validate, jwtSecret string) domain.AuthUsecase {
	return &authUsecase{
		store:     st,
		validate:  validate,
		jwtSecret: []byte(jwtSecret),
		audit:     audit.Default(),
	}
}

// Register creates the profile plus its role payload in one snapshot write.
// Companies come in unverified, professionals pending; both wait for the
// admin audit before they are fully operational.
func (u *authUsecase) Register(ctx context.Context, reg *domain.Registration) (*domain.Profile, error) {
	if err := u.validate.Struct(reg); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	profile := domain.Profile{
		ID:           uuid.NewString(),
		Role:         reg.Role,
		Name:         reg.Name,
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	lat, lng := reg.GeoLat, reg.GeoLng
	if lat == 0 && lng == 0 {
		coords, ok := store.RioCoords[reg.Address]
		if !ok {
			coords = store.RioCoords["Centro"]
		}
		lat, lng = coords[0], coords[1]
	}

	err = u.store.Update(func(snap *domain.Snapshot) error {
		if snap.ProfileByEmail(reg.Email) != nil {
			return apperror.Conflict("Email already registered")
		}
		snap.Profiles = append(snap.Profiles, profile)

		switch reg.Role {
		case domain.RoleCompany:
			snap.CompanyProfiles = append(snap.CompanyProfiles, domain.CompanyProfile{
				UserID:                profile.ID,
				CompanyName:           reg.CompanyName,
				OwnerName:             reg.OwnerName,
				TaxID:                 reg.TaxID,
				MunicipalRegistration: reg.MunicipalRegistration,
				Segment:               reg.Segment,
				Address:               reg.Address,
				FullAddress:           reg.FullAddress,
				ZipCode:               reg.ZipCode,
				CommercialPhone:       reg.CommercialPhone,
				GeoLat:                lat,
				GeoLng:                lng,
			})
		case domain.RoleProfessional:
			snap.ProfessionalProfiles = append(snap.ProfessionalProfiles, domain.ProfessionalProfile{
				UserID:         profile.ID,
				ApprovalStatus: domain.ApprovalPending,
				Skills:         reg.Skills,
				City:           reg.City,
				GeoLat:         lat,
				GeoLng:         lng,
				Bio:            reg.Bio,
			})
		}
		return nil
	}, domain.Change{Kind: domain.ChangeProfile, ID: profile.ID})
	if err != nil {
		return nil, err
	}

	u.audit.Event(audit.EventRegistered, reg.Email, zap.String("role", reg.Role))
	out := profile
	out.PasswordHash = ""
	return &out, nil
}

// Login checks the stored bcrypt hash and issues a session token. Suspended
// profiles are rejected with the same message as a wrong password, so the
// response does not leak account state.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	var found *domain.Profile
	u.store.View(func(snap *domain.Snapshot) {
		if p := snap.ProfileByEmail(email); p != nil {
			cp := *p
			found = &cp
		}
	})

	if found == nil || found.IsSuspended ||
		bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		u.audit.Event(audit.EventLoginFailed, email)
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}

	token, err := u.issueToken(found)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	u.audit.Event(audit.EventLoginSuccess, email, zap.String("role", found.Role))
	found.PasswordHash = ""
	return found, token, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.Profile, error) {
	var found *domain.Profile
	u.store.View(func(snap *domain.Snapshot) {
		if p := snap.ProfileByID(id); p != nil {
			cp := *p
			found = &cp
		}
	})
	if found == nil {
		return nil, apperror.NotFound("User not found")
	}
	found.PasswordHash = ""
	return found, nil
}

func (u *authUsecase) issueToken(p *domain.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":   p.ID,
		"email": p.Email,
		"role":  p.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.jwtSecret)
}
