package api

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is; the *Error carries the details.
var (
	ErrUnlock    = errors.New("could not unlock vault")
	ErrLock      = errors.New("could not lock vault")
	ErrSync      = errors.New("could not sync vault")
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("multiple matches")
	ErrList      = errors.New("could not list objects")
	ErrUpdate    = errors.New("could not update object")
	ErrCreate    = errors.New("could not create object")
	ErrDelete    = errors.New("could not delete object")
	ErrTransport = errors.New("transport error")
)

// Error is returned by every Client operation that fails for a reason
// other than an undecodable payload.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Op names the operation, e.g. "get item".
	Op string
	// Message is the daemon's own message, verbatim, when it sent one.
	Message string
	// Status is the HTTP status code, 0 if no response was received.
	Status int
	// Err is the underlying cause (network or decode failure), if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		fmt.Fprintf(&b, " [%s]", e.Message)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
