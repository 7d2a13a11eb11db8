// Package envelope decodes the daemon's success/error response wrapper:
//
//	{"success": true,  "data": <payload>}
//	{"success": false, "message": "..."}
//
// The "success" flag is checked before the payload is touched.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"

	"BwClient/internal/model"
)

// Response is a decoded envelope. Data is only set when Success is true,
// Message only when it is false.
type Response[T any] struct {
	Success bool
	Data    T
	Message string
}

// PayloadDecoder turns the raw "data" value into T.
type PayloadDecoder[T any] func(data []byte) (T, error)

// Decode decodes body as an envelope, using dec for the success payload.
// Every failure is a *model.DecodeError.
func Decode[T any](body []byte, dec PayloadDecoder[T]) (*Response[T], error) {
	var raw struct {
		Success json.RawMessage `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &model.DecodeError{Err: err}
	}

	switch string(bytes.TrimSpace(raw.Success)) {
	case "true":
		if raw.Data == nil {
			return nil, &model.DecodeError{Field: "data", Err: fmt.Errorf("required key is missing")}
		}
		data, err := dec(raw.Data)
		if err != nil {
			return nil, model.WithPath("data", model.AsDecodeError(err))
		}
		return &Response[T]{Success: true, Data: data}, nil
	case "false":
		var msg string
		if len(raw.Message) > 0 {
			if err := json.Unmarshal(raw.Message, &msg); err != nil {
				return nil, &model.DecodeError{Field: "message", Err: err}
			}
		}
		return &Response[T]{Message: msg}, nil
	case "":
		return nil, &model.DecodeError{Field: "success", Err: fmt.Errorf("required key is missing")}
	default:
		return nil, &model.DecodeError{Field: "success", Value: string(bytes.TrimSpace(raw.Success)), Err: fmt.Errorf("not a boolean")}
	}
}

// JSON decodes the payload with encoding/json; T's own UnmarshalJSON does
// any validation.
func JSON[T any]() PayloadDecoder[T] {
	return func(data []byte) (T, error) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return v, model.AsDecodeError(err)
		}
		return v, nil
	}
}

// Any accepts whatever payload is sent. Used where only the flag matters.
func Any() PayloadDecoder[json.RawMessage] {
	return func(data []byte) (json.RawMessage, error) {
		return json.RawMessage(data), nil
	}
}

// String decodes a {"object":"string","data":"..."} payload.
func String() PayloadDecoder[string] {
	return func(data []byte) (string, error) {
		var obj struct {
			Data *string `json:"data"`
		}
		if err := expectObject(data, "string", &obj); err != nil {
			return "", err
		}
		if obj.Data == nil {
			return "", &model.DecodeError{Field: "data", Err: fmt.Errorf("required key is missing")}
		}
		return *obj.Data, nil
	}
}

// Template decodes a {"object":"template","template":{...}} payload.
func Template[T any](inner PayloadDecoder[T]) PayloadDecoder[T] {
	return func(data []byte) (T, error) {
		var zero T
		var obj struct {
			Template json.RawMessage `json:"template"`
		}
		if err := expectObject(data, "template", &obj); err != nil {
			return zero, err
		}
		if obj.Template == nil {
			return zero, &model.DecodeError{Field: "template", Err: fmt.Errorf("required key is missing")}
		}
		v, err := inner(obj.Template)
		if err != nil {
			return zero, model.WithPath("template", err)
		}
		return v, nil
	}
}

// List decodes a {"object":"list","data":[...]} payload element by element,
// keeping wire order.
func List[T any](elem PayloadDecoder[T]) PayloadDecoder[[]T] {
	return func(data []byte) ([]T, error) {
		var obj struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := expectObject(data, "list", &obj); err != nil {
			return nil, err
		}
		out := make([]T, 0, len(obj.Data))
		for i, raw := range obj.Data {
			v, err := elem(raw)
			if err != nil {
				return nil, model.WithPath(fmt.Sprintf("data[%d]", i), err)
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// expectObject checks the "object" tag and decodes the rest into dst.
func expectObject(data []byte, want string, dst any) error {
	var tag struct {
		Object *string `json:"object"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return &model.DecodeError{Err: err}
	}
	if tag.Object == nil {
		return &model.DecodeError{Field: "object", Err: fmt.Errorf("required key is missing")}
	}
	if *tag.Object != want {
		return &model.DecodeError{Field: "object", Value: fmt.Sprintf("%q", *tag.Object), Err: fmt.Errorf("want %q", want)}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &model.DecodeError{Err: err}
	}
	return nil
}
