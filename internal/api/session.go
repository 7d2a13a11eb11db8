package api

import (
	"context"
	"net/http"

	"BwClient/internal/envelope"
	"BwClient/internal/model"
	"BwClient/internal/secret"
)

type unlockRequest struct {
	Password string `json:"password"`
}

// Unlock unlocks the vault with the master password and returns the
// session key the daemon issued.
func (c *Client) Unlock(ctx context.Context, password secret.Value) (secret.Value, error) {
	r := request{
		method:  http.MethodPost,
		path:    "/unlock",
		payload: unlockRequest{Password: password.Reveal()},
	}
	data, err := call[model.UnlockData](ctx, c, "unlock", ErrUnlock, r, model.DecodeUnlockData)
	if err != nil {
		return secret.Value{}, err
	}
	c.logger.Infow("vault unlocked", "title", data.Title)
	return data.Raw, nil
}

// Lock locks the vault.
func (c *Client) Lock(ctx context.Context) error {
	_, err := call(ctx, c, "lock", ErrLock, request{method: http.MethodPost, path: "/lock"}, envelope.Any())
	return err
}

// Sync asks the daemon to pull the vault from the server. Only the status
// code is checked.
func (c *Client) Sync(ctx context.Context) error {
	return c.expectOK(ctx, "sync", ErrSync, request{method: http.MethodPost, path: "/sync"})
}

// Status reports the daemon's lock state and account.
func (c *Client) Status(ctx context.Context) (model.ServerStatus, error) {
	r := request{method: http.MethodGet, path: "/status"}
	return call(ctx, c, "get status", ErrNotFound, r, envelope.Template[model.ServerStatus](model.DecodeServerStatus))
}

// Fingerprint returns the account fingerprint phrase.
func (c *Client) Fingerprint(ctx context.Context) (string, error) {
	r := request{method: http.MethodGet, path: "/object/fingerprint/me"}
	return call(ctx, c, "get fingerprint", ErrNotFound, r, envelope.String())
}
