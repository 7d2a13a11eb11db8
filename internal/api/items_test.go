package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BwClient/internal/model"
	"BwClient/internal/secret"
)

func note(name string) *model.SecureNoteItem {
	return &model.SecureNoteItem{ItemBase: model.ItemBase{Name: name}}
}

func TestListItems_QueryOmitsEmptyFilters(t *testing.T) {
	c, d := unlockedClient(t)
	ctx := context.Background()

	_, err := c.ListItems(ctx, ItemQuery{})
	require.NoError(t, err)
	assert.Empty(t, d.LastRequest().Query)

	_, err = c.ListItems(ctx, ItemQuery{FolderID: "f1", Trash: true, Search: "x"})
	require.NoError(t, err)
	q := d.LastRequest().Query
	assert.Equal(t, "/list/object/items", d.LastRequest().Path)
	assert.Equal(t, "f1", q.Get("folderid"))
	assert.Equal(t, "true", q.Get("trash"))
	assert.Equal(t, "x", q.Get("search"))
	for _, k := range []string{"organizationId", "collectionId", "url"} {
		_, ok := q[k]
		assert.False(t, ok, k)
	}
}

func TestListItems_Exact(t *testing.T) {
	c, d := unlockedClient(t)
	ctx := context.Background()
	d.AddItem(note("BBS"))
	d.AddItem(note("BBSextra"))

	items, err := c.ListItems(ctx, ItemQuery{Search: "BBS"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = c.ListItems(ctx, ItemQuery{Search: "BBS", Exact: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "BBS", items[0].Common().Name)

	items, err = c.ListItems(ctx, ItemQuery{Exact: true})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFindItem(t *testing.T) {
	c, d := unlockedClient(t)
	ctx := context.Background()
	id := d.AddItem(note("BBS"))
	d.AddItem(note("BBSextra"))

	_, err := c.FindItem(ctx, ItemQuery{Search: "BBS"})
	require.ErrorIs(t, err, ErrAmbiguous)
	assert.Contains(t, err.Error(), "2 matches")

	it, err := c.FindItem(ctx, ItemQuery{Search: "BBS", Exact: true})
	require.NoError(t, err)
	assert.Equal(t, id, it.Common().ID)

	_, err = c.FindItem(ctx, ItemQuery{Search: "nothing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetItem_NotFound(t *testing.T) {
	c, _ := unlockedClient(t)
	_, err := c.GetItem(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Not found.", ae.Message)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}

func TestPostGetPutItem(t *testing.T) {
	c, d := unlockedClient(t)
	ctx := context.Background()
	user, pin := "alice", "pin"

	created, err := c.PostItem(ctx, &model.NewLoginItem{
		NewItemBase: model.NewItemBase{
			Name:   "bank",
			Fields: model.Fields{model.HiddenField{Name: &pin, Value: secret.Ptr("1234")}},
		},
		Login: model.LoginData{Username: &user, Password: secret.Ptr("s3cret")},
	})
	require.NoError(t, err)

	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(d.LastRequest().Body, &sent))
	assert.JSONEq(t, `[]`, string(sent["collectionIds"]))
	assert.Contains(t, string(sent["login"]), `"password":"s3cret"`)
	_, hasID := sent["id"]
	assert.False(t, hasID)

	login, ok := created.(*model.LoginItem)
	require.True(t, ok)
	assert.NotEmpty(t, login.ID)
	assert.True(t, login.Login.Password.Equal(secret.New("s3cret")))
	assert.False(t, login.Meta.CreatedAt.IsZero())

	got, err := c.GetItem(ctx, login.ID)
	require.NoError(t, err)
	require.Len(t, got.Common().Fields, 1)
	hidden, ok := got.Common().Fields[0].(model.HiddenField)
	require.True(t, ok)
	assert.Equal(t, "1234", hidden.Value.Reveal())

	login = got.(*model.LoginItem)
	login.Name = "bank (old)"
	login.Login.Password = secret.Ptr("n3w")
	updated, err := c.PutItem(ctx, login)
	require.NoError(t, err)

	var put map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(d.LastRequest().Body, &put))
	for _, k := range []string{"revisionDate", "creationDate", "deletedDate", "passwordHistory"} {
		_, ok := put[k]
		assert.False(t, ok, k)
	}
	assert.Equal(t, "bank (old)", updated.Common().Name)
	require.Len(t, updated.Common().Meta.PasswordHistory, 1)
	assert.Equal(t, "s3cret", updated.Common().Meta.PasswordHistory[0].Password.Reveal())
}

func TestPutItem_Errors(t *testing.T) {
	c, _ := unlockedClient(t)
	ctx := context.Background()

	_, err := c.PutItem(ctx, nil)
	assert.ErrorIs(t, err, ErrUpdate)

	it := note("ghost")
	it.ID = "missing"
	_, err = c.PutItem(ctx, it)
	require.ErrorIs(t, err, ErrUpdate)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Not found.", ae.Message)

	_, err = c.PostItem(ctx, nil)
	assert.ErrorIs(t, err, ErrCreate)
}

func TestDeleteRestoreItem(t *testing.T) {
	c, d := unlockedClient(t)
	ctx := context.Background()
	id := d.AddItem(note("memo"))

	require.NoError(t, c.DeleteItem(ctx, id))
	live, err := c.ListItems(ctx, ItemQuery{})
	require.NoError(t, err)
	assert.Empty(t, live)
	trash, err := c.ListItems(ctx, ItemQuery{Trash: true})
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.NotNil(t, trash[0].Common().Meta.DeletedAt)

	require.NoError(t, c.RestoreItem(ctx, id))
	live, err = c.ListItems(ctx, ItemQuery{})
	require.NoError(t, err)
	assert.Len(t, live, 1)
	assert.Equal(t, "/restore/item/"+string(id), d.Requests()[len(d.Requests())-2].Path)

	err = c.RestoreItem(ctx, id)
	require.ErrorIs(t, err, ErrTransport)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)

	err = c.DeleteItem(ctx, "missing")
	require.ErrorIs(t, err, ErrDelete)
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Not found.", ae.Message)
}

func TestListItems_LockedVault(t *testing.T) {
	c, _ := lockedClient(t)
	_, err := c.ListItems(context.Background(), ItemQuery{})
	require.ErrorIs(t, err, ErrList)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Vault is locked.", ae.Message)
}

func TestGetPutItem_KeepsUnknownURIKeys(t *testing.T) {
	c, d := unlockedClient(t)
	ctx := context.Background()
	id := d.AddItem(&model.LoginItem{
		ItemBase: model.ItemBase{Name: "site"},
		Login: model.LoginData{URIs: []model.LoginURI{{
			URI:   "https://a",
			Extra: map[string]json.RawMessage{"uriChecksum": json.RawMessage(`"CK"`)},
		}}},
	})

	got, err := c.GetItem(ctx, id)
	require.NoError(t, err)
	got.Common().Name = "site (renamed)"
	_, err = c.PutItem(ctx, got)
	require.NoError(t, err)

	var put struct {
		Login struct {
			URIs []map[string]json.RawMessage `json:"uris"`
		} `json:"login"`
	}
	require.NoError(t, json.Unmarshal(d.LastRequest().Body, &put))
	require.Len(t, put.Login.URIs, 1)
	assert.JSONEq(t, `"CK"`, string(put.Login.URIs[0]["uriChecksum"]))
	assert.JSONEq(t, `"https://a"`, string(put.Login.URIs[0]["uri"]))
}
