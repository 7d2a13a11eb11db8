package api

import (
	"context"
	"net/http"

	"BwClient/internal/envelope"
	"BwClient/internal/model"
)

func folderName(f model.Folder) string { return f.Name }

// GetFolder fetches one folder by id.
func (c *Client) GetFolder(ctx context.Context, id model.FolderID) (model.Folder, error) {
	r := request{method: http.MethodGet, path: objectPath("folder", string(id))}
	return call[model.Folder](ctx, c, "get folder", ErrNotFound, r, model.DecodeFolder)
}

// ListFolders lists folders matching q.
func (c *Client) ListFolders(ctx context.Context, q FolderQuery) ([]model.Folder, error) {
	r := request{method: http.MethodGet, path: listPath("folders"), query: q.values()}
	folders, err := call(ctx, c, "list folders", ErrList, r, envelope.List[model.Folder](model.DecodeFolder))
	if err != nil {
		return nil, err
	}
	if q.Exact {
		return exactNames(folders, q.Search, folderName), nil
	}
	return folders, nil
}

// FindFolder returns the single folder matching q.
func (c *Client) FindFolder(ctx context.Context, q FolderQuery) (model.Folder, error) {
	folders, err := c.ListFolders(ctx, q)
	if err != nil {
		return model.Folder{}, err
	}
	return exactlyOne("find folder", folders)
}

// PutFolder renames the folder with f.ID.
func (c *Client) PutFolder(ctx context.Context, f model.Folder) (model.Folder, error) {
	r := request{method: http.MethodPut, path: objectPath("folder", string(f.ID)), payload: f}
	return call[model.Folder](ctx, c, "update folder", ErrUpdate, r, model.DecodeFolder)
}

// PostFolder creates a folder.
func (c *Client) PostFolder(ctx context.Context, f model.NewFolder) (model.Folder, error) {
	r := request{method: http.MethodPost, path: "/object/folder", payload: f}
	return call[model.Folder](ctx, c, "create folder", ErrCreate, r, model.DecodeFolder)
}

// DeleteFolder deletes a folder. Items in it are kept.
func (c *Client) DeleteFolder(ctx context.Context, id model.FolderID) error {
	return c.expectOK(ctx, "delete folder", ErrDelete, request{method: http.MethodDelete, path: objectPath("folder", string(id))})
}
