package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BwClient/internal/secret"
)

const loginItemJSON = `{
  "object": "item",
  "id": "6f1c9a5e-0000-4000-8000-000000000001",
  "organizationId": "org-1",
  "collectionIds": ["coll-1", "coll-2"],
  "folderId": null,
  "type": 1,
  "reprompt": 0,
  "name": "BBS",
  "notes": "dial-up",
  "favorite": true,
  "fields": [
    {"name": "pin", "value": "1234", "type": 1},
    {"name": "legacy", "value": "false", "type": 2}
  ],
  "login": {
    "uris": [{"match": null, "uri": "telnet://bbs.example.org"}],
    "username": "sysop",
    "password": "p4ss",
    "totp": null
  },
  "passwordHistory": [{"lastUsedDate": "2024-01-02T03:04:05Z", "password": "old"}],
  "revisionDate": "2024-02-03T04:05:06.123Z",
  "creationDate": "2023-01-01T00:00:00Z",
  "deletedDate": null
}`

func TestDecodeItem_Login(t *testing.T) {
	it, err := DecodeItem([]byte(loginItemJSON))
	require.NoError(t, err)

	login, ok := it.(*LoginItem)
	require.True(t, ok, "want *LoginItem, got %T", it)
	assert.Equal(t, ItemTypeLogin, it.Type())

	b := it.Common()
	assert.Equal(t, ItemID("6f1c9a5e-0000-4000-8000-000000000001"), b.ID)
	require.NotNil(t, b.OrgID)
	assert.Equal(t, OrganizationID("org-1"), *b.OrgID)
	assert.Equal(t, []CollectionID{"coll-1", "coll-2"}, b.CollectionIDs)
	assert.Nil(t, b.FolderID)
	assert.Equal(t, "BBS", b.Name)
	assert.True(t, b.Favorite)
	require.Len(t, b.Fields, 2)
	assert.IsType(t, HiddenField{}, b.Fields[0])
	assert.Equal(t, BoolField{Name: strp("legacy"), Value: false}, b.Fields[1])

	require.NotNil(t, login.Login.Password)
	assert.Equal(t, "p4ss", login.Login.Password.Reveal())
	assert.Equal(t, "sysop", *login.Login.Username)
	require.Len(t, login.Login.URIs, 1)
	assert.Equal(t, "telnet://bbs.example.org", login.Login.URIs[0].URI)

	require.Len(t, b.Meta.PasswordHistory, 1)
	assert.Equal(t, "old", b.Meta.PasswordHistory[0].Password.Reveal())
	assert.True(t, time.Date(2024, 2, 3, 4, 5, 6, 123000000, time.UTC).Equal(b.Meta.RevisedAt))
	assert.Nil(t, b.Meta.DeletedAt)
}

func TestLoginURI_KeepsUnknownKeys(t *testing.T) {
	in := `{"object":"item","type":1,"id":"i-1","name":"a","login":{"uris":[{"match":null,"uri":"https://a","uriChecksum":"CK"}],"username":null,"password":null,"totp":null}}`
	it, err := DecodeItem([]byte(in))
	require.NoError(t, err)

	uris := it.(*LoginItem).Login.URIs
	require.Len(t, uris, 1)
	assert.Equal(t, "https://a", uris[0].URI)
	assert.JSONEq(t, `"CK"`, string(uris[0].Extra["uriChecksum"]))

	out, err := json.Marshal(it)
	require.NoError(t, err)
	var wire struct {
		Login struct {
			URIs []map[string]json.RawMessage `json:"uris"`
		} `json:"login"`
	}
	require.NoError(t, json.Unmarshal(out, &wire))
	require.Len(t, wire.Login.URIs, 1)
	assert.JSONEq(t, `{"match":null,"uri":"https://a","uriChecksum":"CK"}`, mustJSON(t, wire.Login.URIs[0]))

	// a plain URI stays plain
	out, err = json.Marshal(LoginURI{URI: "https://b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"match":null,"uri":"https://b"}`, string(out))
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestItem_EncodeKeepsWireNamesAndDropsMetadata(t *testing.T) {
	it, err := DecodeItem([]byte(loginItemJSON))
	require.NoError(t, err)

	out, err := json.Marshal(it)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	for _, k := range []string{"object", "id", "organizationId", "collectionIds", "folderId", "type", "reprompt", "name", "notes", "favorite", "fields", "login"} {
		assert.Contains(t, m, k)
	}
	for _, k := range []string{"passwordHistory", "revisionDate", "creationDate", "deletedDate", "Meta", "org_id"} {
		assert.NotContains(t, m, k)
	}
	assert.JSONEq(t, `{"uris":[{"match":null,"uri":"telnet://bbs.example.org"}],"username":"sysop","password":"p4ss","totp":null}`, string(m["login"]))
	assert.JSONEq(t, `"item"`, string(m["object"]))
	assert.JSONEq(t, `1`, string(m["type"]))
}

func TestItem_EmptyFieldsAreOmitted(t *testing.T) {
	note := &SecureNoteItem{ItemBase: ItemBase{ID: "n1", Name: "note", CollectionIDs: []CollectionID{}, Fields: Fields{}}}
	out, err := json.Marshal(note)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"fields"`)

	note.Fields = Fields{TextField{Name: strp("k"), Value: strp("v")}}
	out, err = json.Marshal(note)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"fields":[{"name":"k","value":"v","type":0}]`)
}

func TestItem_RoundTripAllVariants(t *testing.T) {
	org := OrganizationID("org-9")
	folder := FolderID("dir-1")
	base := ItemBase{
		ID:            "i-1",
		OrgID:         &org,
		CollectionIDs: []CollectionID{"c-1"},
		FolderID:      &folder,
		Name:          "thing",
		Notes:         strp("notes"),
		Reprompt:      1,
		Fields:        Fields{LinkField{Name: strp("user"), LinkedID: LinkUsername}},
	}
	items := []Item{
		&LoginItem{ItemBase: base, Login: LoginData{Username: strp("u"), Password: secret.Ptr("p"), URIs: []LoginURI{}}},
		&LoginItem{ItemBase: ItemBase{ID: "i-2", Name: "bare"}},
		&SecureNoteItem{ItemBase: base, SecureNote: SecureNoteData{Type: 0}},
		&CardItem{ItemBase: base, Card: json.RawMessage(`{"brand":"Visa","number":"4111"}`)},
		&IdentityItem{ItemBase: base, Identity: json.RawMessage(`{"firstName":"Ada"}`)},
	}
	for _, it := range items {
		t.Run(it.Type().String(), func(t *testing.T) {
			b, err := json.Marshal(it)
			require.NoError(t, err)
			got, err := DecodeItem(b)
			require.NoError(t, err)
			assert.Equal(t, it, got)
		})
	}
}

func TestDecodeItem_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantField string
	}{
		{"unknown type", `{"object":"item","type":5,"id":"x","name":"x"}`, "type"},
		{"missing type", `{"object":"item","id":"x","name":"x"}`, "type"},
		{"wrong object", `{"object":"folder","type":1,"id":"x","name":"x","login":{}}`, "object"},
		{"missing sub-object", `{"object":"item","type":2,"id":"x","name":"x"}`, "secureNote"},
		{"null sub-object", `{"object":"item","type":1,"id":"x","name":"x","login":null}`, "login"},
		{"foreign sub-object", `{"object":"item","type":1,"id":"x","name":"x","login":{},"card":{"brand":"x"}}`, "card"},
		{"bad field", `{"object":"item","type":1,"id":"x","name":"x","login":{},"fields":[{"type":8}]}`, "fields[0].type"},
		{"bad login", `{"object":"item","type":1,"id":"x","name":"x","login":{"password":5}}`, "login"},
		{"malformed", `{"object":"item",`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeItem([]byte(tt.in))
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantField, de.Field)
		})
	}
}

func TestNewItem_EncodeDefaults(t *testing.T) {
	org := OrganizationID("dsa")
	it := &NewLoginItem{NewItemBase: NewItemBase{Name: "flaf", OrgID: &org}}
	b, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"organizationId": "dsa",
		"collectionIds": [],
		"folderId": null,
		"name": "flaf",
		"notes": null,
		"favorite": false,
		"reprompt": 0,
		"type": 1,
		"login": {"uris": null, "username": null, "password": null, "totp": null}
	}`, string(b))
}

func TestNewItem_RoundTrip(t *testing.T) {
	items := []NewItem{
		&NewLoginItem{
			NewItemBase: NewItemBase{Name: "flaf", CollectionIDs: []CollectionID{}, Fields: Fields{HiddenField{Name: strp("k"), Value: secret.Ptr("v")}}},
			Login:       LoginData{Username: strp("me"), Password: secret.Ptr("pw")},
		},
		&NewSecureNoteItem{NewItemBase: NewItemBase{Name: "memo", CollectionIDs: []CollectionID{"c"}, Notes: strp("text")}},
	}
	for _, it := range items {
		b, err := json.Marshal(it)
		require.NoError(t, err)
		got, err := DecodeNewItem(b)
		require.NoError(t, err)
		assert.Equal(t, it, got)
	}
}

func TestDecodeNewItem_Rejects(t *testing.T) {
	_, err := DecodeNewItem([]byte(`{"type":3,"name":"card"}`))
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "type", de.Field)

	_, err = DecodeNewItem([]byte(`{"type":2,"name":"memo"}`))
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "secureNote", de.Field)

	it, err := DecodeNewItem([]byte(`{"type":1,"name":"bare"}`))
	require.NoError(t, err)
	assert.Equal(t, &NewLoginItem{NewItemBase: NewItemBase{Name: "bare"}}, it)
}
