// Package daemontest runs an in-memory stand-in for the vault daemon's
// HTTP API, good enough to drive the client end to end.
package daemontest

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"BwClient/internal/middleware"
	"BwClient/internal/model"
)

// Request is a call the daemon received.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// Daemon is the fake. Its zero value is not usable; call New.
type Daemon struct {
	mu sync.Mutex

	password    string
	session     string
	locked      bool
	serverURL   string
	userEmail   string
	userID      model.UserID
	fingerprint string
	lastSync    time.Time

	items       []model.Item
	folders     []model.Folder
	orgs        []model.Organization
	collections []model.Collection
	requests    []Request

	now    func() time.Time
	logger *zap.SugaredLogger
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithLogger routes request logs to l.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(d *Daemon) { d.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Daemon) { d.now = now }
}

// Unlocked starts the vault unlocked.
func Unlocked() Option {
	return func(d *Daemon) {
		d.locked = false
		d.session = uuid.NewString()
	}
}

// New returns a locked vault that opens with password.
func New(password string, opts ...Option) *Daemon {
	d := &Daemon{
		password:    password,
		locked:      true,
		serverURL:   "https://vault.example.org",
		userEmail:   "user@example.org",
		userID:      model.UserID(uuid.NewString()),
		fingerprint: "correct-horse-battery-staple",
		now:         time.Now,
		logger:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handler returns the daemon's routes.
func (d *Daemon) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging(d.logger))
	r.Use(d.record)

	r.Post("/unlock", d.unlock)
	r.Post("/lock", d.lock)
	r.Get("/status", d.status)

	r.Group(func(r chi.Router) {
		r.Use(d.requireUnlocked)

		r.Post("/sync", d.sync)
		r.Get("/object/fingerprint/me", d.getFingerprint)

		r.Get("/object/item/{id}", d.getItem)
		r.Put("/object/item/{id}", d.putItem)
		r.Post("/object/item", d.postItem)
		r.Delete("/object/item/{id}", d.deleteItem)
		r.Post("/restore/item/{id}", d.restoreItem)
		r.Get("/list/object/items", d.listItems)

		r.Get("/object/folder/{id}", d.getFolder)
		r.Put("/object/folder/{id}", d.putFolder)
		r.Post("/object/folder", d.postFolder)
		r.Delete("/object/folder/{id}", d.deleteFolder)
		r.Get("/list/object/folders", d.listFolders)

		r.Get("/object/organization/{id}", d.getOrganization)
		r.Get("/list/object/organizations", d.listOrganizations)

		r.Get("/object/collection/{id}", d.getCollection)
		r.Get("/list/object/collections", d.listCollections)
		r.Get("/list/object/org-collections", d.listOrgCollections)
		r.Get("/object/org-collection/{id}", d.getOrgCollection)
		r.Put("/object/org-collection/{id}", d.putOrgCollection)
		r.Post("/object/org-collection", d.postOrgCollection)
		r.Delete("/object/org-collection/{id}", d.deleteOrgCollection)
	})
	return r
}

// Locked reports whether the vault is locked.
func (d *Daemon) Locked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.locked
}

// Session returns the key issued by the last unlock.
func (d *Daemon) Session() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session
}

// LastSync returns the time of the last sync.
func (d *Daemon) LastSync() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastSync
}

// Requests returns the calls received so far, oldest first.
func (d *Daemon) Requests() []Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Request(nil), d.requests...)
}

// LastRequest returns the most recent call.
func (d *Daemon) LastRequest() Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.requests) == 0 {
		return Request{}
	}
	return d.requests[len(d.requests)-1]
}

// AddItem stores it, assigning an id when it has none.
func (d *Daemon) AddItem(it model.Item) model.ItemID {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := it.Common()
	if b.ID == "" {
		b.ID = model.ItemID(uuid.NewString())
	}
	if b.CollectionIDs == nil {
		b.CollectionIDs = []model.CollectionID{}
	}
	if b.Meta.CreatedAt.IsZero() {
		b.Meta.CreatedAt = d.now().UTC()
		b.Meta.RevisedAt = b.Meta.CreatedAt
	}
	d.items = append(d.items, it)
	return b.ID
}

// AddFolder stores a folder named name.
func (d *Daemon) AddFolder(name string) model.FolderID {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := model.Folder{ID: model.FolderID(uuid.NewString()), Name: name}
	d.folders = append(d.folders, f)
	return f.ID
}

// AddOrganization stores an enabled organization named name.
func (d *Daemon) AddOrganization(name string) model.OrganizationID {
	d.mu.Lock()
	defer d.mu.Unlock()
	o := model.Organization{ID: model.OrganizationID(uuid.NewString()), Name: name, Enabled: true}
	d.orgs = append(d.orgs, o)
	return o.ID
}

// AddCollection stores a collection of org named name.
func (d *Daemon) AddCollection(org model.OrganizationID, name string, groups ...model.GroupLink) model.CollectionID {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := model.Collection{ID: model.CollectionID(uuid.NewString()), OrgID: org, Name: name, Groups: groups}
	d.collections = append(d.collections, c)
	return c.ID
}
