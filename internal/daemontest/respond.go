package daemontest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const (
	msgNotFound = "Not found."
	msgLocked   = "Vault is locked."
)

type envelopeBody struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type message struct {
	NoColor bool    `json:"noColor"`
	Object  string  `json:"object"`
	Title   string  `json:"title"`
	Message *string `json:"message"`
}

type list struct {
	Object string `json:"object"`
	Data   any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelopeBody{Success: true, Data: data})
}

func writeList[T any](w http.ResponseWriter, data []T) {
	if data == nil {
		data = []T{}
	}
	writeData(w, http.StatusOK, list{Object: "list", Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelopeBody{Message: msg})
}

func writeMessage(w http.ResponseWriter, title string) {
	writeData(w, http.StatusOK, message{Object: "message", Title: title})
}

// record keeps a copy of every request for assertions.
func (d *Daemon) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		d.mu.Lock()
		d.requests = append(d.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
		})
		d.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (d *Daemon) requireUnlocked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if d.Locked() {
			writeError(w, http.StatusBadRequest, msgLocked)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(r.Body)
}

// matches is the daemon's search: a case-insensitive substring match.
func matches(search, name string) bool {
	return search == "" || strings.Contains(strings.ToLower(name), strings.ToLower(search))
}
