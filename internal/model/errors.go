package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DecodeError reports a wire payload that could not be mapped onto a model
// type: malformed JSON, a missing required key, or an unknown discriminator.
type DecodeError struct {
	// Field is the dotted path of the offending key, e.g. "fields[1].type".
	// Empty when the payload itself is not valid JSON.
	Field string
	// Value is the raw offending value for discriminators. Never set for
	// fields that may carry secrets.
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	var b bytes.Buffer
	b.WriteString("decode")
	if e.Field != "" {
		fmt.Fprintf(&b, " %q", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, ": unexpected value %s", e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

var (
	errMissing     = errors.New("required key is missing")
	errNotAllowed  = errors.New("key is not allowed for this type")
	errUnknownKind = errors.New("unknown discriminator")
	errWrongType   = errors.New("value has the wrong JSON type")
)

// WithPath prefixes the field path of a DecodeError. Any other error
// becomes a DecodeError at prefix.
func WithPath(prefix string, err error) error {
	if err == nil {
		return nil
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		de = fromJSON(err)
	}
	out := *de
	switch {
	case out.Field == "":
		out.Field = prefix
	case out.Field[0] == '[':
		out.Field = prefix + out.Field
	default:
		out.Field = prefix + "." + out.Field
	}
	return &out
}

// AsDecodeError passes DecodeErrors through and wraps anything else
// (typically an encoding/json error) as a malformed payload.
func AsDecodeError(err error) error {
	if err == nil {
		return nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return fromJSON(err)
}

// fromJSON turns an encoding/json error into a DecodeError. Type
// mismatches report the wire key instead of the Go type that held it.
func fromJSON(err error) *DecodeError {
	var te *json.UnmarshalTypeError
	if !errors.As(err, &te) || te.Field == "" {
		return &DecodeError{Err: err}
	}
	// older encoders prefix the path with the Go struct name
	field := te.Field
	if te.Struct != "" {
		field = strings.TrimPrefix(field, te.Struct+".")
	}
	return &DecodeError{Field: field, Err: fmt.Errorf("%w: got JSON %s", errWrongType, te.Value)}
}

func missing(field string) *DecodeError {
	return &DecodeError{Field: field, Err: errMissing}
}

func unexpected(field string, raw []byte) *DecodeError {
	return &DecodeError{Field: field, Value: string(bytes.TrimSpace(raw)), Err: errUnknownKind}
}

// isNull reports whether raw is the JSON literal null.
func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// present reports whether a key was sent with a non-null value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !isNull(raw)
}

// decodeTag reads the integer discriminator stored under key.
func decodeTag(data []byte, key string) (int, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return 0, &DecodeError{Err: err}
	}
	raw, ok := keys[key]
	if !ok {
		return 0, missing(key)
	}
	if isNull(raw) {
		return 0, unexpected(key, raw)
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, &DecodeError{Field: key, Value: string(bytes.TrimSpace(raw)), Err: err}
	}
	return n, nil
}

// decodeObjectTag checks the "object" key against the allowed values and
// returns the one found.
func decodeObjectTag(data []byte, allowed ...string) (string, error) {
	var head struct {
		Object json.RawMessage `json:"object"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", &DecodeError{Err: err}
	}
	if head.Object == nil {
		return "", missing("object")
	}
	var s string
	if err := json.Unmarshal(head.Object, &s); err != nil {
		return "", unexpected("object", head.Object)
	}
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	return "", unexpected("object", head.Object)
}
