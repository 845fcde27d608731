package platform

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Tenant is an organization: an isolated customer account namespace a new
// user registration is scoped to.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// tenantPage is the paginated /tenants envelope.
type tenantPage struct {
	Data  []Tenant `json:"data"`
	Total int      `json:"total"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
}

// ListTenants returns the organizations known to the backend, in server
// order. The set is small; no pagination is walked.
func (g *Gateway) ListTenants(ctx context.Context) ([]Tenant, error) {
	var page tenantPage
	if err := g.http.Do(ctx, http.MethodGet, "/tenants", nil, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// GetTenant returns one organization by id.
func (g *Gateway) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	var tenant Tenant
	if err := g.http.Do(ctx, http.MethodGet, fmt.Sprintf("/tenants/%s", id), nil, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}
