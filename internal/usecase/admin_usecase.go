package usecase

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
	"meup-backend/pkg/audit"
)

type adminUsecase struct {
	store  domain.Store
	authUC domain.AuthUsecase
	reseed func(context.Context) error
	audit  *audit.Logger
}

// NewAdminUsecase wires the admin flows. reseed wipes and reseeds the
// snapshot; main injects it bound to the configured demo credentials.
func NewAdminUsecase(st domain.Store, authUC domain.AuthUsecase, reseed func(context.Context) error) domain.AdminUsecase {
	return &adminUsecase{store: st, authUC: authUC, reseed: reseed, audit: audit.Default()}
}

func (u *adminUsecase) ListUsers(ctx context.Context, search, roleFilter string) ([]domain.AdminUser, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	out := []domain.AdminUser{}
	u.store.View(func(snap *domain.Snapshot) {
		for _, p := range snap.Profiles {
			if p.Role == domain.RoleAdmin {
				continue
			}
			if roleFilter != "" && p.Role != roleFilter {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.Email), search) {
				continue
			}
			out = append(out, adminUser(snap, p))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Profile.CreatedAt.After(out[j].Profile.CreatedAt)
	})
	return out, nil
}

func (u *adminUsecase) GetUser(ctx context.Context, userID string) (*domain.AdminUser, error) {
	var out *domain.AdminUser
	u.store.View(func(snap *domain.Snapshot) {
		if p := snap.ProfileByID(userID); p != nil {
			au := adminUser(snap, *p)
			out = &au
		}
	})
	if out == nil {
		return nil, apperror.NotFound("User not found")
	}
	return out, nil
}

func (u *adminUsecase) CreateUser(ctx context.Context, reg *domain.Registration) (*domain.Profile, error) {
	return u.authUC.Register(ctx, reg)
}

// ToggleVerification flips the audit flag for either role. For
// professionals, docs verification and approval move together, matching the
// single admin "verificar documentação" action.
func (u *adminUsecase) ToggleVerification(ctx context.Context, userID string) (*domain.AdminUser, error) {
	err := u.store.Update(func(snap *domain.Snapshot) error {
		profile := snap.ProfileByID(userID)
		if profile == nil {
			return apperror.NotFound("User not found")
		}
		switch profile.Role {
		case domain.RoleCompany:
			company := snap.CompanyByUserID(userID)
			if company == nil {
				return apperror.NotFound("Company profile not found")
			}
			company.IsVerified = !company.IsVerified
		case domain.RoleProfessional:
			prof := snap.ProfessionalByUserID(userID)
			if prof == nil {
				return apperror.NotFound("Professional profile not found")
			}
			prof.DocsVerified = !prof.DocsVerified
			if prof.DocsVerified {
				prof.ApprovalStatus = domain.ApprovalApproved
			} else {
				prof.ApprovalStatus = domain.ApprovalPending
			}
		default:
			return apperror.BadRequest("Admin profiles have no verification flag")
		}
		return nil
	}, domain.Change{Kind: domain.ChangeProfile, ID: userID})
	if err != nil {
		return nil, err
	}

	u.audit.Event(audit.EventVerification, userID)
	return u.GetUser(ctx, userID)
}

func (u *adminUsecase) SetSuspended(ctx context.Context, userID string, suspended bool) error {
	err := u.store.Update(func(snap *domain.Snapshot) error {
		profile := snap.ProfileByID(userID)
		if profile == nil {
			return apperror.NotFound("User not found")
		}
		if profile.Role == domain.RoleAdmin {
			return apperror.Forbidden("Admin accounts cannot be suspended")
		}
		profile.IsSuspended = suspended
		return nil
	}, domain.Change{Kind: domain.ChangeProfile, ID: userID})
	if err != nil {
		return err
	}
	u.audit.Event(audit.EventSuspension, userID, zap.Bool("suspended", suspended))
	return nil
}

func (u *adminUsecase) ListJobs(ctx context.Context) ([]domain.JobRequest, error) {
	out := []domain.JobRequest{}
	u.store.View(func(snap *domain.Snapshot) {
		out = append(out, snap.JobRequests...)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (u *adminUsecase) Stats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{}
	u.store.View(func(snap *domain.Snapshot) {
		stats.TotalUsers = len(snap.Profiles)
		stats.TotalCompanies = len(snap.CompanyProfiles)
		stats.TotalProfessionals = len(snap.ProfessionalProfiles)
		for _, c := range snap.CompanyProfiles {
			if !c.IsVerified {
				stats.PendingCompanies++
			}
		}
		for _, p := range snap.ProfessionalProfiles {
			if p.ApprovalStatus == domain.ApprovalPending {
				stats.PendingProfessionals++
			}
		}
		stats.TotalJobs = len(snap.JobRequests)
		for _, j := range snap.JobRequests {
			switch {
			case j.Status == domain.JobStatusFinished:
				stats.FinishedJobs++
			case !domain.JobStatusTerminal(j.Status):
				stats.ActiveJobs++
			}
		}
	})
	return stats, nil
}

func (u *adminUsecase) Reset(ctx context.Context) error {
	if err := u.reseed(ctx); err != nil {
		return apperror.Internal(err)
	}
	u.audit.Event(audit.EventDatabaseReset, "admin")
	return nil
}

func adminUser(snap *domain.Snapshot, p domain.Profile) domain.AdminUser {
	p.PasswordHash = ""
	extra := domain.RoleProfile{Role: p.Role}
	switch p.Role {
	case domain.RoleCompany:
		if c := snap.CompanyByUserID(p.ID); c != nil {
			cp := *c
			extra.Company = &cp
		}
	case domain.RoleProfessional:
		if pr := snap.ProfessionalByUserID(p.ID); pr != nil {
			cp := *pr
			extra.Professional = &cp
		}
	}
	return domain.AdminUser{Profile: p, Extra: extra}
}
