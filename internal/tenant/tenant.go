// Package tenant turns a verified identity into a scoped storage handle.
//
// Tenant isolation is an architectural rule, not a store feature: components
// receive a *Scope, never a tenant id plus a raw store, so a cross-tenant read
// cannot be expressed. Scope pins the tenants/{id} root and only hands out
// collections underneath it.
package tenant

import (
	"fmt"

	"github.com/cadernoapp/caderno/internal/docstore"
	"github.com/cadernoapp/caderno/internal/domain"
)

// Identity is a verified authentication result: an opaque subject key plus
// the account email. The subject key is the tenant key.
type Identity struct {
	Subject string
	Email   string
}

// Scope is a storage handle pinned to one tenant's root. The zero value is
// unusable; construct through Resolve.
type Scope struct {
	store    docstore.Store
	tenantID string
}

// Resolve derives the tenant scope for a verified identity. It fails with
// domain.ErrUnauthenticated when no identity is present and has no side
// effects: a tenant with no prior data simply resolves to empty collections.
func Resolve(store docstore.Store, id Identity) (*Scope, error) {
	if id.Subject == "" {
		return nil, fmt.Errorf("tenant.Resolve: %w", domain.ErrUnauthenticated)
	}
	return &Scope{store: store, tenantID: id.Subject}, nil
}

func (s *Scope) TenantID() string { return s.tenantID }

func (s *Scope) Clients() docstore.Collection {
	return s.collection("clients")
}

func (s *Scope) ServiceTypes() docstore.Collection {
	return s.collection("service_types")
}

func (s *Scope) ServiceRecords() docstore.Collection {
	return s.collection("service_records")
}

func (s *Scope) Configurations() docstore.Collection {
	return s.collection("configurations")
}

func (s *Scope) collection(name string) docstore.Collection {
	return s.store.Collection("tenants/" + s.tenantID + "/" + name)
}
