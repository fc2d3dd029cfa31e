package domain

import (
	"errors"
	"strings"
)

// Client is a catalog entry for a person or business the tenant performs
// services for. JSON tags double as the persisted document field names, which
// follow the store's original Portuguese schema.
type Client struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"nome"`
	Phone   string `json:"telefone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"endereco,omitempty"`
	Notes   string `json:"observacoes,omitempty"`
}

// NewClient validates required fields and returns a Client ready for insert.
func NewClient(name, phone, email, address, notes string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("client: name is required")
	}
	return &Client{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
		Notes:   notes,
	}, nil
}
