package domain

// CompanyProfile is the company payload owned 1:1 by a Profile with
// RoleCompany. Created unverified; an admin toggles IsVerified.
type CompanyProfile struct {
	UserID                string  `json:"user_id"`
	CompanyName           string  `json:"company_name"`
	OwnerName             string  `json:"owner_name"`
	TaxID                 string  `json:"tax_id"`
	MunicipalRegistration string  `json:"municipal_registration,omitempty"`
	Segment               string  `json:"segment"`
	Address               string  `json:"address"`
	FullAddress           string  `json:"full_address"`
	ZipCode               string  `json:"zip_code"`
	CommercialPhone       string  `json:"commercial_phone,omitempty"`
	GeoLat                float64 `json:"geo_lat"`
	GeoLng                float64 `json:"geo_lng"`
	IsVerified            bool    `json:"is_verified"`
}
