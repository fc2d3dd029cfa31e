package domain

import "time"

// User is an account in the global users collection. A user's ID doubles as
// the tenant key: every piece of bookkeeping data the user owns lives under
// tenants/{user.ID}.
type User struct {
	ID           string    `json:"id,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Name         string    `json:"name,omitempty"`
	Provider     string    `json:"provider,omitempty"` // "" for password accounts, "google" for OAuth
	ProviderID   string    `json:"provider_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
