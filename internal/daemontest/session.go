package daemontest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type unlockBody struct {
	Password string `json:"password"`
}

type unlockData struct {
	NoColor bool   `json:"noColor"`
	Object  string `json:"object"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Raw     string `json:"raw"`
}

type statusTemplate struct {
	ServerURL string    `json:"serverUrl"`
	LastSync  time.Time `json:"lastSync"`
	UserEmail string    `json:"userEmail"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
}

func (d *Daemon) unlock(w http.ResponseWriter, r *http.Request) {
	var body unlockBody
	if err := decodeBody(r, &body); err != nil || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Master password is required.")
		return
	}

	d.mu.Lock()
	if body.Password != d.password {
		d.mu.Unlock()
		writeError(w, http.StatusBadRequest, "Invalid master password.")
		return
	}
	d.locked = false
	d.session = uuid.NewString()
	key := d.session
	d.mu.Unlock()

	writeData(w, http.StatusOK, unlockData{
		Object:  "message",
		Title:   "Your vault is now unlocked!",
		Message: fmt.Sprintf("export BW_SESSION=%q", key),
		Raw:     key,
	})
}

func (d *Daemon) lock(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	d.locked = true
	d.session = ""
	d.mu.Unlock()
	writeMessage(w, "Your vault is locked.")
}

func (d *Daemon) sync(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	d.lastSync = d.now().UTC()
	d.mu.Unlock()
	writeMessage(w, "Syncing complete.")
}

func (d *Daemon) status(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	t := statusTemplate{
		ServerURL: d.serverURL,
		LastSync:  d.lastSync,
		UserEmail: d.userEmail,
		UserID:    string(d.userID),
		Status:    "unlocked",
	}
	if d.locked {
		t.Status = "locked"
	}
	d.mu.Unlock()

	writeData(w, http.StatusOK, struct {
		Object   string         `json:"object"`
		Template statusTemplate `json:"template"`
	}{"template", t})
}

func (d *Daemon) getFingerprint(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	fp := d.fingerprint
	d.mu.Unlock()
	writeData(w, http.StatusOK, struct {
		Object string `json:"object"`
		Data   string `json:"data"`
	}{"string", fp})
}
