package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"BwClient/internal/secret"
)

// FieldType is the "type" discriminator of a custom item field.
type FieldType int

const (
	FieldTypeText   FieldType = 0
	FieldTypeHidden FieldType = 1
	FieldTypeBool   FieldType = 2
	FieldTypeLink   FieldType = 3
)

func (t FieldType) String() string {
	switch t {
	case FieldTypeText:
		return "text"
	case FieldTypeHidden:
		return "hidden"
	case FieldTypeBool:
		return "boolean"
	case FieldTypeLink:
		return "linked"
	}
	return "FieldType(" + strconv.Itoa(int(t)) + ")"
}

// LinkTarget is the login property a linked field points at.
type LinkTarget int

const (
	LinkUsername LinkTarget = 100
	LinkPassword LinkTarget = 101
)

func (l LinkTarget) String() string {
	switch l {
	case LinkUsername:
		return "username"
	case LinkPassword:
		return "password"
	}
	return "LinkTarget(" + strconv.Itoa(int(l)) + ")"
}

func (l *LinkTarget) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil || isNull(data) {
		return unexpected("linkedId", data)
	}
	switch LinkTarget(n) {
	case LinkUsername, LinkPassword:
		*l = LinkTarget(n)
		return nil
	}
	return unexpected("linkedId", data)
}

// Field is one of TextField, HiddenField, BoolField or LinkField.
type Field interface {
	Type() FieldType
	isField()
}

// TextField is a plain custom field.
type TextField struct {
	Name  *string
	Value *string
}

// HiddenField is a custom field whose value is masked in the vault UI.
type HiddenField struct {
	Name  *string
	Value *secret.Value
}

// BoolField is a checkbox field. The daemon carries the value as "true"/"false".
type BoolField struct {
	Name  *string
	Value bool
}

// LinkField mirrors a login property and never has a value of its own.
type LinkField struct {
	Name     *string
	LinkedID LinkTarget
}

func (TextField) Type() FieldType   { return FieldTypeText }
func (HiddenField) Type() FieldType { return FieldTypeHidden }
func (BoolField) Type() FieldType   { return FieldTypeBool }
func (LinkField) Type() FieldType   { return FieldTypeLink }

func (TextField) isField()   {}
func (HiddenField) isField() {}
func (BoolField) isField()   {}
func (LinkField) isField()   {}

type fieldWire struct {
	Name     *string     `json:"name"`
	Value    any         `json:"value"`
	Type     FieldType   `json:"type"`
	LinkedID *LinkTarget `json:"linkedId,omitempty"`
}

func (f TextField) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldWire{Name: f.Name, Value: f.Value, Type: FieldTypeText})
}

func (f HiddenField) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldWire{Name: f.Name, Value: secret.RevealPtr(f.Value), Type: FieldTypeHidden})
}

func (f BoolField) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldWire{Name: f.Name, Value: strconv.FormatBool(f.Value), Type: FieldTypeBool})
}

func (f LinkField) MarshalJSON() ([]byte, error) {
	id := f.LinkedID
	return json.Marshal(fieldWire{Name: f.Name, Type: FieldTypeLink, LinkedID: &id})
}

// DecodeField decodes a single custom field, branching on "type".
func DecodeField(data []byte) (Field, error) {
	tag, err := decodeTag(data, "type")
	if err != nil {
		return nil, err
	}
	var w struct {
		Name     *string         `json:"name"`
		Value    json.RawMessage `json:"value"`
		LinkedID json.RawMessage `json:"linkedId"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fromJSON(err)
	}

	switch FieldType(tag) {
	case FieldTypeText:
		f := TextField{Name: w.Name}
		if present(w.Value) {
			var s string
			if err := json.Unmarshal(w.Value, &s); err != nil {
				return nil, &DecodeError{Field: "value", Err: err}
			}
			f.Value = &s
		}
		return f, nil
	case FieldTypeHidden:
		f := HiddenField{Name: w.Name}
		if present(w.Value) {
			var s secret.Value
			if err := json.Unmarshal(w.Value, &s); err != nil {
				return nil, &DecodeError{Field: "value", Err: err}
			}
			f.Value = &s
		}
		return f, nil
	case FieldTypeBool:
		b, err := decodeFieldBool(w.Value)
		if err != nil {
			return nil, err
		}
		return BoolField{Name: w.Name, Value: b}, nil
	case FieldTypeLink:
		if present(w.Value) {
			return nil, &DecodeError{Field: "value", Err: errNotAllowed}
		}
		if !present(w.LinkedID) {
			return nil, missing("linkedId")
		}
		var target LinkTarget
		if err := json.Unmarshal(w.LinkedID, &target); err != nil {
			return nil, AsDecodeError(err)
		}
		return LinkField{Name: w.Name, LinkedID: target}, nil
	}
	return nil, unexpected("type", []byte(strconv.Itoa(tag)))
}

// decodeFieldBool accepts both the daemon's string form and a JSON bool.
func decodeFieldBool(raw json.RawMessage) (bool, error) {
	if !present(raw) {
		return false, missing("value")
	}
	switch string(bytes.TrimSpace(raw)) {
	case `true`, `"true"`:
		return true, nil
	case `false`, `"false"`:
		return false, nil
	}
	return false, unexpected("value", raw)
}

// Fields is the custom field list of an item. It decodes each element
// through DecodeField so it can sit in plain structs.
type Fields []Field

func (f *Fields) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*f = nil
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return &DecodeError{Field: "fields", Err: err}
	}
	out := make(Fields, 0, len(raws))
	for i, raw := range raws {
		fld, err := DecodeField(raw)
		if err != nil {
			return WithPath(fmt.Sprintf("fields[%d]", i), err)
		}
		out = append(out, fld)
	}
	*f = out
	return nil
}
