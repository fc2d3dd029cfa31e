package domain

// CompanyProfile is the tenant's letterhead: free-form display fields plus an
// optional logo embedded as base64 for inline use in rendered documents.
// Singleton per tenant, updated via merge-upsert so fields absent from an
// update (the logo, typically) are preserved.
type CompanyProfile struct {
	DisplayName string `json:"nome"`
	Phone       string `json:"telefone,omitempty"`
	Email       string `json:"email,omitempty"`
	TaxID       string `json:"cnpj,omitempty"`
	Address     string `json:"endereco,omitempty"`
	LogoData    string `json:"logo,omitempty"`
	LogoMime    string `json:"logo_mime,omitempty"`
}

// ProfileDocID is the fixed document id of the per-tenant profile singleton
// inside the configurations collection.
const ProfileDocID = "profile"
