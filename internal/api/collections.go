package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"BwClient/internal/envelope"
	"BwClient/internal/model"
)

var errNoOrg = errors.New("organization id is required")

func orgQuery(id model.OrganizationID) url.Values {
	return url.Values{"organizationId": {string(id)}}
}

// GetCollection fetches one collection by id.
func (c *Client) GetCollection(ctx context.Context, id model.CollectionID) (model.Collection, error) {
	r := request{method: http.MethodGet, path: objectPath("collection", string(id))}
	return call[model.Collection](ctx, c, "get collection", ErrNotFound, r, model.DecodeCollection)
}

// GetOrgCollection fetches a collection through its organization, which
// also returns its group assignments.
func (c *Client) GetOrgCollection(ctx context.Context, orgID model.OrganizationID, id model.CollectionID) (model.Collection, error) {
	r := request{method: http.MethodGet, path: objectPath("org-collection", string(id)), query: orgQuery(orgID)}
	return call[model.Collection](ctx, c, "get collection", ErrNotFound, r, model.DecodeCollection)
}

// ListCollections lists collections. With q.OrganizationID set only that
// organization's collections are listed.
func (c *Client) ListCollections(ctx context.Context, q CollectionQuery) ([]model.Collection, error) {
	path := listPath("collections")
	if q.OrganizationID != "" {
		path = listPath("org-collections")
	}
	r := request{method: http.MethodGet, path: path, query: q.values()}
	cols, err := call(ctx, c, "list collections", ErrList, r, envelope.List[model.Collection](model.DecodeCollection))
	if err != nil {
		return nil, err
	}
	if q.Exact {
		return exactNames(cols, q.Search, func(col model.Collection) string { return col.Name }), nil
	}
	return cols, nil
}

// FindCollection returns the single collection matching q.
func (c *Client) FindCollection(ctx context.Context, q CollectionQuery) (model.Collection, error) {
	cols, err := c.ListCollections(ctx, q)
	if err != nil {
		return model.Collection{}, err
	}
	return exactlyOne("find collection", cols)
}

// PostCollection creates a collection in col.OrgID.
func (c *Client) PostCollection(ctx context.Context, col model.NewCollection) (model.Collection, error) {
	if col.OrgID == "" {
		return model.Collection{}, &Error{Kind: ErrCreate, Op: "create collection", Err: errNoOrg}
	}
	r := request{
		method:  http.MethodPost,
		path:    "/object/org-collection",
		query:   orgQuery(col.OrgID),
		payload: col,
	}
	return call[model.Collection](ctx, c, "create collection", ErrCreate, r, model.DecodeCollection)
}

// PutCollection updates the collection with col.ID.
func (c *Client) PutCollection(ctx context.Context, col model.Collection) (model.Collection, error) {
	if col.OrgID == "" {
		return model.Collection{}, &Error{Kind: ErrUpdate, Op: "update collection", Err: errNoOrg}
	}
	r := request{
		method:  http.MethodPut,
		path:    objectPath("org-collection", string(col.ID)),
		query:   orgQuery(col.OrgID),
		payload: col,
	}
	return call[model.Collection](ctx, c, "update collection", ErrUpdate, r, model.DecodeCollection)
}

// DeleteCollection deletes a collection of orgID.
func (c *Client) DeleteCollection(ctx context.Context, orgID model.OrganizationID, id model.CollectionID) error {
	if orgID == "" {
		return &Error{Kind: ErrDelete, Op: "delete collection", Err: errNoOrg}
	}
	r := request{method: http.MethodDelete, path: objectPath("org-collection", string(id)), query: orgQuery(orgID)}
	return c.expectOK(ctx, "delete collection", ErrDelete, r)
}
