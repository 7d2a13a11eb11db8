package model

import (
	"encoding/json"
	"time"

	"BwClient/internal/secret"
)

// LockStatus is the vault state reported by the daemon.
type LockStatus string

const (
	StatusLocked   LockStatus = "locked"
	StatusUnlocked LockStatus = "unlocked"
)

func (s *LockStatus) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil || isNull(data) {
		return unexpected("status", data)
	}
	switch LockStatus(v) {
	case StatusLocked, StatusUnlocked:
		*s = LockStatus(v)
		return nil
	}
	return unexpected("status", data)
}

// ServerStatus is the "template" payload of /status.
type ServerStatus struct {
	ServerURL *string    `json:"serverUrl"`
	LastSync  time.Time  `json:"lastSync"`
	UserEmail string     `json:"userEmail"`
	UserID    UserID     `json:"userId"`
	Status    LockStatus `json:"status"`
}

func (s *ServerStatus) UnmarshalJSON(data []byte) error {
	type plain ServerStatus
	var p struct {
		plain
		Status json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return AsDecodeError(err)
	}
	if p.Status == nil {
		return missing("status")
	}
	if err := json.Unmarshal(p.Status, &p.plain.Status); err != nil {
		return AsDecodeError(err)
	}
	*s = ServerStatus(p.plain)
	return nil
}

// UnlockData is the payload of a successful /unlock. The message text
// embeds the session key, so it is kept secret as well.
type UnlockData struct {
	NoColor bool         `json:"noColor"`
	Object  string       `json:"object"`
	Title   string       `json:"title"`
	Message secret.Value `json:"message"`
	Raw     secret.Value `json:"raw"`
}
