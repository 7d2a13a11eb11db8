// Package secret holds sensitive strings (master password, session key,
// hidden field values) so they don't end up in logs or default output.
package secret

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
)

// Redacted is what every default rendering of a Value prints.
const Redacted = "**********"

// Value is an opaque string. The plaintext is only reachable through Reveal.
type Value struct {
	plain string
}

// New wraps plain.
func New(plain string) Value {
	return Value{plain: plain}
}

// Ptr wraps plain and returns a pointer, for nullable wire fields.
func Ptr(plain string) *Value {
	v := New(plain)
	return &v
}

// Reveal returns the wrapped plaintext. Call it only when building an
// outbound request body or handing the value to the user on purpose.
func (v Value) Reveal() string {
	return v.plain
}

// RevealPtr is Reveal for nullable values: nil stays nil.
func RevealPtr(v *Value) *string {
	if v == nil {
		return nil
	}
	s := v.plain
	return &s
}

// IsZero reports whether the wrapped string is empty.
func (v Value) IsZero() bool {
	return v.plain == ""
}

// Equal compares the wrapped strings in constant time.
func (v Value) Equal(other Value) bool {
	return subtle.ConstantTimeCompare([]byte(v.plain), []byte(other.plain)) == 1
}

func (v Value) String() string {
	return Redacted
}

func (v Value) GoString() string {
	return "secret.Value(" + Redacted + ")"
}

// Format redacts for every verb, including %#v and %+v which would
// otherwise walk the struct.
func (v Value) Format(f fmt.State, verb rune) {
	switch verb {
	case 'q':
		_, _ = fmt.Fprintf(f, "%q", Redacted)
	case 'v':
		if f.Flag('#') {
			_, _ = io.WriteString(f, v.GoString())
			return
		}
		_, _ = io.WriteString(f, Redacted)
	default:
		_, _ = io.WriteString(f, Redacted)
	}
}

// MarshalJSON emits the placeholder. Wire encoders reveal explicitly.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(Redacted)
}

// UnmarshalJSON wraps a JSON string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("secret: expected JSON string: %w", err)
	}
	v.plain = s
	return nil
}

// UnmarshalText wraps raw text; used when loading from the environment.
func (v *Value) UnmarshalText(text []byte) error {
	v.plain = string(text)
	return nil
}
