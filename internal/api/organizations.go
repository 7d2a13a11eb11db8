package api

import (
	"context"
	"net/http"

	"BwClient/internal/envelope"
	"BwClient/internal/model"
)

// GetOrganization fetches one organization by id.
func (c *Client) GetOrganization(ctx context.Context, id model.OrganizationID) (model.Organization, error) {
	r := request{method: http.MethodGet, path: objectPath("organization", string(id))}
	return call[model.Organization](ctx, c, "get organization", ErrNotFound, r, model.DecodeOrganization)
}

// ListOrganizations lists the organizations the account belongs to.
func (c *Client) ListOrganizations(ctx context.Context, q OrganizationQuery) ([]model.Organization, error) {
	r := request{method: http.MethodGet, path: listPath("organizations"), query: q.values()}
	orgs, err := call(ctx, c, "list organizations", ErrList, r, envelope.List[model.Organization](model.DecodeOrganization))
	if err != nil {
		return nil, err
	}
	if q.Exact {
		return exactNames(orgs, q.Search, func(o model.Organization) string { return o.Name }), nil
	}
	return orgs, nil
}

// FindOrganization returns the single organization matching q.
func (c *Client) FindOrganization(ctx context.Context, q OrganizationQuery) (model.Organization, error) {
	orgs, err := c.ListOrganizations(ctx, q)
	if err != nil {
		return model.Organization{}, err
	}
	return exactlyOne("find organization", orgs)
}
