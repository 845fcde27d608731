// Package tenant resolves the organizations available for registration.
//
// The signup flow needs a tenant list even when the backend is unreachable
// (first run, dev proxy down), so the directory falls back to a small
// built-in set of well-known organizations when the remote listing fails.
package tenant

import (
	"context"

	"github.com/google/uuid"

	"github.com/aiutodesk/desk/internal/errors"
	"github.com/aiutodesk/desk/internal/log"
	"github.com/aiutodesk/desk/internal/platform"
)

// Lister fetches organizations from the backend.
type Lister interface {
	ListTenants(ctx context.Context) ([]platform.Tenant, error)
}

// fallbackTenants mirrors the organizations pre-provisioned on the hosted
// backend, so signup keeps working offline.
var fallbackTenants = []platform.Tenant{
	{ID: "6e976210-e9f5-4296-9087-bf1e6a8e320f", Name: "Empresa Exemplo", Status: "active"},
	{ID: "5c7202d8-b9bb-4b43-9f7b-73fe4726eb90", Name: "Empresa Demo", Status: "active"},
	{ID: "644131b9-d42e-4c21-8d19-d77dca61b479", Name: "Teste Corp", Status: "active"},
}

// Directory lists and validates organizations, preferring the live backend
// and degrading to the built-in set.
type Directory struct {
	lister Lister
	logger *log.Logger
}

func NewDirectory(lister Lister, logger *log.Logger) *Directory {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Directory{lister: lister, logger: logger}
}

// List returns the available organizations. A remote failure is logged and
// answered with the built-in fallback set instead of an error; order is
// preserved in both cases.
func (d *Directory) List(ctx context.Context) []platform.Tenant {
	tenants, err := d.lister.ListTenants(ctx)
	if err != nil {
		d.logger.WithError(err).Warn("tenant listing failed, using built-in organizations")
		return append([]platform.Tenant(nil), fallbackTenants...)
	}
	if len(tenants) == 0 {
		return append([]platform.Tenant(nil), fallbackTenants...)
	}
	return tenants
}

// Resolve validates id and confirms it names a known organization.
func (d *Directory) Resolve(ctx context.Context, id string) (*platform.Tenant, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	for _, t := range d.List(ctx) {
		if t.ID == id {
			tenant := t
			return &tenant, nil
		}
	}
	return nil, errors.NewTenantNotFoundError(id)
}

// Fallback returns the built-in organization set.
func Fallback() []platform.Tenant {
	return append([]platform.Tenant(nil), fallbackTenants...)
}

// ValidateID checks that id is a well-formed organization identifier.
func ValidateID(id string) error {
	if id == "" {
		return errors.New(errors.ErrCodeMissingField, "organization id is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "organization id must be a UUID", err).
			WithSuggestion("Run 'desk tenants list' to see available organizations")
	}
	return nil
}
