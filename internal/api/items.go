package api

import (
	"context"
	"errors"
	"net/http"

	"BwClient/internal/envelope"
	"BwClient/internal/model"
)

var errNilItem = errors.New("nil item")

func itemName(it model.Item) string { return it.Common().Name }

// GetItem fetches one item by id.
func (c *Client) GetItem(ctx context.Context, id model.ItemID) (model.Item, error) {
	r := request{method: http.MethodGet, path: objectPath("item", string(id))}
	return call[model.Item](ctx, c, "get item", ErrNotFound, r, model.DecodeItem)
}

// ListItems lists items matching q, in the daemon's order.
func (c *Client) ListItems(ctx context.Context, q ItemQuery) ([]model.Item, error) {
	r := request{method: http.MethodGet, path: listPath("items"), query: q.values()}
	items, err := call(ctx, c, "list items", ErrList, r, envelope.List[model.Item](model.DecodeItem))
	if err != nil {
		return nil, err
	}
	if q.Exact {
		return exactNames(items, q.Search, itemName), nil
	}
	return items, nil
}

// FindItem returns the single item matching q.
func (c *Client) FindItem(ctx context.Context, q ItemQuery) (model.Item, error) {
	items, err := c.ListItems(ctx, q)
	if err != nil {
		return nil, err
	}
	return exactlyOne("find item", items)
}

// PutItem replaces the item with the same id and returns the stored copy.
// Read-only metadata is not sent.
func (c *Client) PutItem(ctx context.Context, item model.Item) (model.Item, error) {
	if item == nil {
		return nil, &Error{Kind: ErrUpdate, Op: "update item", Err: errNilItem}
	}
	r := request{
		method:  http.MethodPut,
		path:    objectPath("item", string(item.Common().ID)),
		payload: item,
	}
	return call[model.Item](ctx, c, "update item", ErrUpdate, r, model.DecodeItem)
}

// PostItem creates an item.
func (c *Client) PostItem(ctx context.Context, item model.NewItem) (model.Item, error) {
	if item == nil {
		return nil, &Error{Kind: ErrCreate, Op: "create item", Err: errNilItem}
	}
	r := request{method: http.MethodPost, path: "/object/item", payload: item}
	return call[model.Item](ctx, c, "create item", ErrCreate, r, model.DecodeItem)
}

// DeleteItem moves the item to the trash.
func (c *Client) DeleteItem(ctx context.Context, id model.ItemID) error {
	return c.expectOK(ctx, "delete item", ErrDelete, request{method: http.MethodDelete, path: objectPath("item", string(id))})
}

// RestoreItem brings an item back from the trash.
func (c *Client) RestoreItem(ctx context.Context, id model.ItemID) error {
	return c.expectOK(ctx, "restore item", ErrTransport, request{method: http.MethodPost, path: "/restore/item/" + urlID(string(id))})
}
