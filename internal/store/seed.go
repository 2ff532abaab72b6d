package store

import (
	"time"

	"meup-backend/internal/domain"
)

// Rio de Janeiro reference coordinates used by the demo seed and by
// registrations that come in without a geocoded address.
var RioCoords = map[string][2]float64{
	"Copacabana": {-22.9711, -43.1822},
	"Meier":      {-22.9027, -43.2780},
	"Centro":     {-22.9068, -43.1729},
	"Botafogo":   {-22.9519, -43.1807},
}

// SeedParams carries the demo credentials, already hashed.
type SeedParams struct {
	AdminEmail        string
	AdminPasswordHash string
	DemoPasswordHash  string
}

// Seed wipes the snapshot and recreates the fixed demo accounts: the master
// admin, one verified company and one approved professional. Called on first
// boot when the store is empty, and by the admin reset operation.
func Seed(s *Store, p SeedParams) error {
	return s.Update(func(snap *domain.Snapshot) error {
		fresh := domain.NewSnapshot()
		*snap = *fresh

		now := time.Now()
		snap.Profiles = append(snap.Profiles, domain.Profile{
			ID:           "admin-1",
			Role:         domain.RoleAdmin,
			Name:         "Admin Master",
			Email:        p.AdminEmail,
			Phone:        "21999999999",
			PasswordHash: p.AdminPasswordHash,
			CreatedAt:    now,
		})

		copa := RioCoords["Copacabana"]
		snap.Profiles = append(snap.Profiles, domain.Profile{
			ID:           "emp-1",
			Role:         domain.RoleCompany,
			Name:         "Carlos Gestor",
			Email:        "c1@empresa.com",
			Phone:        "21988887777",
			PasswordHash: p.DemoPasswordHash,
			CreatedAt:    now,
		})
		snap.CompanyProfiles = append(snap.CompanyProfiles, domain.CompanyProfile{
			UserID:      "emp-1",
			CompanyName: "Padaria Copacabana",
			OwnerName:   "Carlos Silva",
			TaxID:       "12.345.678/0001-90",
			Segment:     "Alimentação",
			Address:     "Copacabana",
			FullAddress: "Av. Nossa Sra. de Copacabana, 500",
			ZipCode:     "22020-001",
			GeoLat:      copa[0],
			GeoLng:      copa[1],
			IsVerified:  true,
		})

		meier := RioCoords["Meier"]
		snap.Profiles = append(snap.Profiles, domain.Profile{
			ID:           "prof-1",
			Role:         domain.RoleProfessional,
			Name:         "Ricardo Silva",
			Email:        "p1@prof.com",
			Phone:        "21977776666",
			PasswordHash: p.DemoPasswordHash,
			CreatedAt:    now,
		})
		snap.ProfessionalProfiles = append(snap.ProfessionalProfiles, domain.ProfessionalProfile{
			UserID:         "prof-1",
			ApprovalStatus: domain.ApprovalApproved,
			Skills:         []string{"caixa", "atendente"},
			RatingAvg:      4.9,
			JobsCompleted:  12,
			City:           "Rio de Janeiro",
			GeoLat:         meier[0],
			GeoLng:         meier[1],
			DocsVerified:   true,
			Bio:            "Experiência com frente de loja.",
			Experience: []domain.WorkHistory{
				{Company: "Mercado Extra", Role: "Caixa", Period: "2021-2023"},
			},
		})

		return nil
	}, domain.Change{Kind: domain.ChangeSnapshot})
}

// Empty reports whether the store has no profiles at all, which triggers the
// first-boot seed.
func Empty(s *Store) bool {
	empty := false
	s.View(func(snap *domain.Snapshot) {
		empty = len(snap.Profiles) == 0
	})
	return empty
}
