package daemontest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"BwClient/internal/model"
)

// Callers of the find* helpers hold d.mu.

func (d *Daemon) findFolder(id model.FolderID) int {
	for i, f := range d.folders {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (d *Daemon) findOrg(id model.OrganizationID) int {
	for i, o := range d.orgs {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func (d *Daemon) findCollection(id model.CollectionID) int {
	for i, c := range d.collections {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (d *Daemon) getFolder(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.findFolder(model.FolderID(chi.URLParam(r, "id")))
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeData(w, http.StatusOK, d.folders[i])
}

func (d *Daemon) postFolder(w http.ResponseWriter, r *http.Request) {
	var nf model.NewFolder
	if err := decodeBody(r, &nf); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if nf.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required.")
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	f := model.Folder{ID: model.FolderID(uuid.NewString()), Name: nf.Name}
	d.folders = append(d.folders, f)
	writeData(w, http.StatusOK, f)
}

func (d *Daemon) putFolder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, err := model.DecodeFolder(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	f.ID = model.FolderID(chi.URLParam(r, "id"))
	i := d.findFolder(f.ID)
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	d.folders[i] = f
	writeData(w, http.StatusOK, f)
}

// deleteFolder removes the folder and moves its items out of it.
func (d *Daemon) deleteFolder(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := model.FolderID(chi.URLParam(r, "id"))
	i := d.findFolder(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	d.folders = append(d.folders[:i], d.folders[i+1:]...)
	for _, it := range d.items {
		if b := it.Common(); b.FolderID != nil && *b.FolderID == id {
			b.FolderID = nil
		}
	}
	writeData(w, http.StatusOK, nil)
}

func (d *Daemon) listFolders(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []model.Folder
	for _, f := range d.folders {
		if matches(search, f.Name) {
			out = append(out, f)
		}
	}
	writeList(w, out)
}

func (d *Daemon) getOrganization(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.findOrg(model.OrganizationID(chi.URLParam(r, "id")))
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeData(w, http.StatusOK, d.orgs[i])
}

func (d *Daemon) listOrganizations(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []model.Organization
	for _, o := range d.orgs {
		if matches(search, o.Name) {
			out = append(out, o)
		}
	}
	writeList(w, out)
}

// unscoped renders c the way /object/collection and /list/object/collections
// do: without group assignments.
func unscoped(c model.Collection) model.Collection {
	c.Object = model.CollectionObject
	c.Groups = nil
	return c
}

func scoped(c model.Collection) model.Collection {
	c.Object = model.OrgCollectionObject
	return c
}

func (d *Daemon) getCollection(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.findCollection(model.CollectionID(chi.URLParam(r, "id")))
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeData(w, http.StatusOK, unscoped(d.collections[i]))
}

func (d *Daemon) listCollections(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []model.Collection
	for _, c := range d.collections {
		if matches(search, c.Name) {
			out = append(out, unscoped(c))
		}
	}
	writeList(w, out)
}

// orgParam reads and checks the organizationId query parameter. Callers
// hold d.mu.
func (d *Daemon) orgParam(w http.ResponseWriter, r *http.Request) (model.OrganizationID, bool) {
	org := model.OrganizationID(r.URL.Query().Get("organizationId"))
	if org == "" {
		writeError(w, http.StatusBadRequest, "--organizationid <organizationid> required.")
		return "", false
	}
	if d.findOrg(org) < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return "", false
	}
	return org, true
}

// orgCollection finds the collection in the URL within org. Callers hold d.mu.
func (d *Daemon) orgCollection(w http.ResponseWriter, r *http.Request, org model.OrganizationID) (int, bool) {
	i := d.findCollection(model.CollectionID(chi.URLParam(r, "id")))
	if i < 0 || d.collections[i].OrgID != org {
		writeError(w, http.StatusNotFound, msgNotFound)
		return -1, false
	}
	return i, true
}

func (d *Daemon) listOrgCollections(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	d.mu.Lock()
	defer d.mu.Unlock()
	org, ok := d.orgParam(w, r)
	if !ok {
		return
	}
	var out []model.Collection
	for _, c := range d.collections {
		if c.OrgID == org && matches(search, c.Name) {
			out = append(out, scoped(c))
		}
	}
	writeList(w, out)
}

func (d *Daemon) getOrgCollection(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	org, ok := d.orgParam(w, r)
	if !ok {
		return
	}
	i, ok := d.orgCollection(w, r, org)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, scoped(d.collections[i]))
}

func (d *Daemon) postOrgCollection(w http.ResponseWriter, r *http.Request) {
	var nc model.NewCollection
	if err := decodeBody(r, &nc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	org, ok := d.orgParam(w, r)
	if !ok {
		return
	}
	if nc.OrgID != org {
		writeError(w, http.StatusBadRequest, "Organization id does not match.")
		return
	}
	c := model.Collection{
		ID:     model.CollectionID(uuid.NewString()),
		OrgID:  org,
		Name:   nc.Name,
		ExtID:  nc.ExtID,
		Groups: nc.Groups,
	}
	d.collections = append(d.collections, c)
	writeData(w, http.StatusOK, scoped(c))
}

func (d *Daemon) putOrgCollection(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := model.DecodeCollection(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	org, ok := d.orgParam(w, r)
	if !ok {
		return
	}
	i, ok := d.orgCollection(w, r, org)
	if !ok {
		return
	}
	c.ID = d.collections[i].ID
	c.OrgID = org
	d.collections[i] = c
	writeData(w, http.StatusOK, scoped(c))
}

func (d *Daemon) deleteOrgCollection(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	org, ok := d.orgParam(w, r)
	if !ok {
		return
	}
	i, ok := d.orgCollection(w, r, org)
	if !ok {
		return
	}
	d.collections = append(d.collections[:i], d.collections[i+1:]...)
	writeData(w, http.StatusOK, nil)
}
