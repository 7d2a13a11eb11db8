package daemontest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"BwClient/internal/model"
)

func get(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestLockedVaultRejectsObjectCalls(t *testing.T) {
	d := New("pw")
	srv := Serve(t, d)

	code, body := get(t, srv.URL+"/list/object/folders")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, msgLocked, body["message"])

	code, body = get(t, srv.URL+"/status")
	assert.Equal(t, http.StatusOK, code)
	tmpl := body["data"].(map[string]any)["template"].(map[string]any)
	assert.Equal(t, "locked", tmpl["status"])
}

func TestUnlockIssuesSession(t *testing.T) {
	d := New("pw")
	srv := Serve(t, d)

	resp, err := http.Post(srv.URL+"/unlock", "application/json", strings.NewReader(`{"password":"nope"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.True(t, d.Locked())

	resp, err = http.Post(srv.URL+"/unlock", "application/json", strings.NewReader(`{"password":"pw"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	var env struct {
		Success bool
		Data    struct{ Raw string }
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.False(t, d.Locked())
	assert.Equal(t, d.Session(), env.Data.Raw)
	assert.NotEmpty(t, env.Data.Raw)
}

func TestListItemsFilters(t *testing.T) {
	d := New("pw", Unlocked())
	folder := d.AddFolder("Work")
	d.AddItem(&model.SecureNoteItem{ItemBase: model.ItemBase{Name: "BBS", FolderID: &folder}})
	d.AddItem(&model.SecureNoteItem{ItemBase: model.ItemBase{Name: "bbsextra"}})
	srv := Serve(t, d)

	_, body := get(t, srv.URL+"/list/object/items?search=bbs")
	assert.Len(t, body["data"].(map[string]any)["data"], 2)

	_, body = get(t, srv.URL+"/list/object/items?folderid="+string(folder))
	assert.Len(t, body["data"].(map[string]any)["data"], 1)

	_, body = get(t, srv.URL+"/list/object/items?folderid=null")
	assert.Len(t, body["data"].(map[string]any)["data"], 1)

	_, body = get(t, srv.URL+"/list/object/items?trash=true")
	assert.Len(t, body["data"].(map[string]any)["data"], 0)
}

func TestRequestsAreRecorded(t *testing.T) {
	d := New("pw", Unlocked())
	srv := Serve(t, d)

	get(t, srv.URL+"/list/object/folders?search=a")
	last := d.LastRequest()
	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "/list/object/folders", last.Path)
	assert.Equal(t, "a", last.Query.Get("search"))
	assert.Len(t, d.Requests(), 1)
}

func TestItemJSONCarriesMetadata(t *testing.T) {
	d := New("pw", Unlocked())
	id := d.AddItem(&model.SecureNoteItem{ItemBase: model.ItemBase{Name: "memo"}})
	srv := Serve(t, d)

	_, body := get(t, srv.URL+"/object/item/"+string(id))
	data := body["data"].(map[string]any)
	assert.Equal(t, "item", data["object"])
	assert.Contains(t, data, "revisionDate")
	assert.Contains(t, data, "creationDate")
	assert.Nil(t, data["deletedDate"])
}

func TestDaemonsKeepTheirOwnLogger(t *testing.T) {
	coreA, logsA := observer.New(zap.InfoLevel)
	coreB, logsB := observer.New(zap.InfoLevel)
	a := New("pw", WithLogger(zap.New(coreA).Sugar()))
	b := New("pw", WithLogger(zap.New(coreB).Sugar()))

	var ha, hb http.Handler
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); ha = a.Handler() }()
	go func() { defer wg.Done(); hb = b.Handler() }()
	wg.Wait()

	srvA := httptest.NewServer(ha)
	defer srvA.Close()
	srvB := httptest.NewServer(hb)
	defer srvB.Close()

	get(t, srvA.URL+"/status")
	get(t, srvB.URL+"/status")
	get(t, srvB.URL+"/status")

	assert.Equal(t, 1, logsA.Len())
	assert.Equal(t, 2, logsB.Len())
}
