package daemontest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"BwClient/internal/model"
)

// itemJSON renders it the way the daemon sends items: wire fields plus
// the read-only metadata.
func itemJSON(it model.Item) (json.RawMessage, error) {
	body, err := json.Marshal(it)
	if err != nil {
		return nil, err
	}
	obj := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, err
	}
	meta, err := json.Marshal(it.Common().Meta)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(meta, &obj); err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

func writeItem(w http.ResponseWriter, it model.Item) {
	body, err := itemJSON(it)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, http.StatusOK, body)
}

// findItem returns the index of id or -1. Callers hold d.mu.
func (d *Daemon) findItem(id model.ItemID) int {
	for i, it := range d.items {
		if it.Common().ID == id {
			return i
		}
	}
	return -1
}

func (d *Daemon) getItem(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.findItem(model.ItemID(chi.URLParam(r, "id")))
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeItem(w, d.items[i])
}

func (d *Daemon) postItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n, err := model.DecodeNewItem(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	it := fromNew(model.ItemID(uuid.NewString()), n)
	now := d.now().UTC()
	it.Common().Meta.CreatedAt = now
	it.Common().Meta.RevisedAt = now
	d.items = append(d.items, it)
	writeItem(w, it)
}

func (d *Daemon) putItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	it, err := model.DecodeItem(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	id := model.ItemID(chi.URLParam(r, "id"))
	i := d.findItem(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	old := d.items[i]
	if old.Type() != it.Type() {
		writeError(w, http.StatusBadRequest, "Item type cannot be changed.")
		return
	}
	b := it.Common()
	b.ID = id
	// metadata is owned by the vault; nothing the client sent survives
	b.Meta = old.Common().Meta
	b.Meta.RevisedAt = d.now().UTC()
	if b.CollectionIDs == nil {
		b.CollectionIDs = []model.CollectionID{}
	}
	d.keepHistory(old, it)
	d.items[i] = it
	writeItem(w, it)
}

// keepHistory moves a replaced login password into the password history.
func (d *Daemon) keepHistory(old, updated model.Item) {
	o, ok1 := old.(*model.LoginItem)
	u, ok2 := updated.(*model.LoginItem)
	if !ok1 || !ok2 || o.Login.Password == nil {
		return
	}
	if u.Login.Password != nil && u.Login.Password.Equal(*o.Login.Password) {
		return
	}
	prev := *o.Login.Password
	u.Meta.PasswordHistory = append([]model.PasswordHistory{{
		LastUsedDate: u.Meta.RevisedAt,
		Password:     &prev,
	}}, u.Meta.PasswordHistory...)
}

func (d *Daemon) deleteItem(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.findItem(model.ItemID(chi.URLParam(r, "id")))
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	now := d.now().UTC()
	d.items[i].Common().Meta.DeletedAt = &now
	writeData(w, http.StatusOK, nil)
}

func (d *Daemon) restoreItem(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.findItem(model.ItemID(chi.URLParam(r, "id")))
	if i < 0 || d.items[i].Common().Meta.DeletedAt == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	d.items[i].Common().Meta.DeletedAt = nil
	writeData(w, http.StatusOK, nil)
}

func (d *Daemon) listItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	trash := q.Get("trash") == "true"

	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]json.RawMessage, 0, len(d.items))
	for _, it := range d.items {
		b := it.Common()
		// live and trashed items never mix in one listing
		if (b.Meta.DeletedAt != nil) != trash {
			continue
		}
		if !matches(q.Get("search"), b.Name) {
			continue
		}
		if org := q.Get("organizationId"); org != "" && (b.OrgID == nil || string(*b.OrgID) != org) {
			continue
		}
		if col := q.Get("collectionId"); col != "" && !inCollection(b, model.CollectionID(col)) {
			continue
		}
		if f := q.Get("folderid"); f != "" && !inFolder(b, f) {
			continue
		}
		if u := q.Get("url"); u != "" && !hasURI(it, u) {
			continue
		}
		body, err := itemJSON(it)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = append(out, body)
	}
	writeList(w, out)
}

func fromNew(id model.ItemID, n model.NewItem) model.Item {
	nb := n.Common()
	base := model.ItemBase{
		ID:            id,
		OrgID:         nb.OrgID,
		CollectionIDs: nb.CollectionIDs,
		FolderID:      nb.FolderID,
		Name:          nb.Name,
		Notes:         nb.Notes,
		Favorite:      nb.Favorite,
		Reprompt:      nb.Reprompt,
		Fields:        nb.Fields,
	}
	// stored items always answer with a list, never null
	if base.CollectionIDs == nil {
		base.CollectionIDs = []model.CollectionID{}
	}
	switch v := n.(type) {
	case *model.NewLoginItem:
		return &model.LoginItem{ItemBase: base, Login: v.Login}
	case *model.NewSecureNoteItem:
		return &model.SecureNoteItem{ItemBase: base, SecureNote: v.SecureNote}
	}
	return &model.SecureNoteItem{ItemBase: base}
}

func inCollection(b *model.ItemBase, id model.CollectionID) bool {
	for _, c := range b.CollectionIDs {
		if c == id {
			return true
		}
	}
	return false
}

// inFolder treats "null" as "not in any folder".
func inFolder(b *model.ItemBase, folder string) bool {
	if folder == "null" {
		return b.FolderID == nil
	}
	return b.FolderID != nil && string(*b.FolderID) == folder
}

func hasURI(it model.Item, u string) bool {
	login, ok := it.(*model.LoginItem)
	if !ok {
		return false
	}
	for _, uri := range login.Login.URIs {
		if strings.Contains(uri.URI, u) {
			return true
		}
	}
	return false
}
