package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolder_RoundTrip(t *testing.T) {
	in := `{"object":"folder","id":"dir-1","name":"Work"}`
	var f Folder
	require.NoError(t, json.Unmarshal([]byte(in), &f))
	assert.Equal(t, Folder{ID: "dir-1", Name: "Work"}, f)

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	var bad Folder
	err = json.Unmarshal([]byte(`{"object":"item","id":"x","name":"y"}`), &bad)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "object", de.Field)
}

func TestNewFolder_Encode(t *testing.T) {
	out, err := json.Marshal(NewFolder{Name: "Personal"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Personal"}`, string(out))
}

func TestOrganization_RoundTrip(t *testing.T) {
	in := `{"object":"organization","id":"org-1","name":"Acme","status":2,"type":0,"enabled":true}`
	var o Organization
	require.NoError(t, json.Unmarshal([]byte(in), &o))
	assert.Equal(t, Organization{ID: "org-1", Name: "Acme", Status: 2, Type: 0, Enabled: true}, o)

	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestCollection_RoundTripAndGroupsOmission(t *testing.T) {
	in := `{"object":"org-collection","id":"c-1","organizationId":"org-1","name":"Shared","externalId":null,
		"groups":[{"id":"g-1","readOnly":true,"hidePasswords":false}]}`
	var c Collection
	require.NoError(t, json.Unmarshal([]byte(in), &c))
	assert.Equal(t, OrgCollectionObject, c.Object)
	assert.Nil(t, c.ExtID)
	require.Len(t, c.Groups, 1)
	assert.True(t, c.Groups[0].ReadOnly)

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	c.Groups = []GroupLink{}
	out, err = json.Marshal(c)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "groups")

	var back Collection
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Nil(t, back.Groups)
}

func TestCollection_DefaultsAndRejects(t *testing.T) {
	var c Collection
	require.NoError(t, json.Unmarshal([]byte(`{"object":"collection","id":"c","organizationId":"o","name":"n","externalId":"ext","groups":[{"id":"g"}]}`), &c))
	assert.Equal(t, GroupLink{ID: "g"}, c.Groups[0])
	assert.Equal(t, "ext", *c.ExtID)

	out, err := json.Marshal(Collection{ID: "c", OrgID: "o", Name: "n"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"object":"collection"`)

	err = json.Unmarshal([]byte(`{"object":"list","id":"c"}`), &c)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "object", de.Field)
	assert.Equal(t, `"list"`, de.Value)
}

func TestNewCollection_Encode(t *testing.T) {
	out, err := json.Marshal(NewCollection{OrgID: "org-1", Name: "Ops"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"organizationId":"org-1","name":"Ops","externalId":null}`, string(out))

	out, err = json.Marshal(NewCollection{OrgID: "org-1", Name: "Ops", Groups: []GroupLink{{ID: "g"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"organizationId":"org-1","name":"Ops","externalId":null,"groups":[{"id":"g","readOnly":false,"hidePasswords":false}]}`, string(out))
}

func TestServerStatus_Decode(t *testing.T) {
	var s ServerStatus
	require.NoError(t, json.Unmarshal([]byte(`{"serverUrl":null,"lastSync":"2024-05-06T07:08:09.000Z","userEmail":"me@example.org","userId":"u-1","status":"unlocked"}`), &s))
	assert.Nil(t, s.ServerURL)
	assert.Equal(t, StatusUnlocked, s.Status)
	assert.Equal(t, UserID("u-1"), s.UserID)
	assert.True(t, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC).Equal(s.LastSync))

	out, err := json.Marshal(s)
	require.NoError(t, err)
	var back ServerStatus
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, s.Status, back.Status)
	assert.True(t, s.LastSync.Equal(back.LastSync))

	for _, in := range []string{
		`{"lastSync":"2024-05-06T07:08:09Z","userEmail":"e","userId":"u","status":"unauthenticated"}`,
		`{"lastSync":"2024-05-06T07:08:09Z","userEmail":"e","userId":"u"}`,
		`{"lastSync":"2024-05-06T07:08:09Z","userEmail":"e","userId":"u","status":1}`,
	} {
		var bad ServerStatus
		err := json.Unmarshal([]byte(in), &bad)
		var de *DecodeError
		require.ErrorAs(t, err, &de, in)
		assert.Equal(t, "status", de.Field)
	}
}

func TestUnlockData_KeepsSessionSecret(t *testing.T) {
	var u UnlockData
	require.NoError(t, json.Unmarshal([]byte(`{"noColor":false,"object":"message","title":"Your vault is now unlocked!","message":"export BW_SESSION=abc","raw":"abc"}`), &u))
	assert.Equal(t, "abc", u.Raw.Reveal())
	assert.NotContains(t, u.Message.String(), "abc")

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "abc")
}

func TestWithPath(t *testing.T) {
	assert.Nil(t, WithPath("x", nil))

	err := WithPath("data[2]", &DecodeError{Field: "type", Value: "9"})
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "data[2].type", de.Field)

	err = WithPath("data", &DecodeError{Field: "[0]"})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "data[0]", de.Field)

	err = WithPath("login", assert.AnError)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "login", de.Field)
	assert.ErrorIs(t, err, assert.AnError)
}
