// Package codec maps templates to and from their persisted JSON records.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xiaomi388/templater/pkg/types"
)

const descriptionKey = "description"

var (
	// ErrInvalidJSON is returned when stored bytes cannot be parsed at all.
	ErrInvalidJSON = errors.New("invalid json")
	// ErrMalformedRecord is returned when a record is not an object with a
	// string description.
	ErrMalformedRecord = errors.New("malformed record")
)

// Record is the JSON-compatible form of one template.
type Record map[string]any

func Encode(t types.Template) Record {
	return Record{descriptionKey: t.Description}
}

func Decode(r Record) (types.Template, error) {
	if r == nil {
		return types.Template{}, fmt.Errorf("%w: record is not an object", ErrMalformedRecord)
	}

	v, ok := r[descriptionKey]
	if !ok {
		return types.Template{}, fmt.Errorf("%w: missing %q", ErrMalformedRecord, descriptionKey)
	}

	desc, ok := v.(string)
	if !ok {
		return types.Template{}, fmt.Errorf("%w: %q is %T, not a string", ErrMalformedRecord, descriptionKey, v)
	}

	return types.Template{Description: desc}, nil
}

func Marshal(t types.Template) (json.RawMessage, error) {
	data, err := json.Marshal(Encode(t))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}

	return data, nil
}

func Unmarshal(raw json.RawMessage) (types.Template, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return types.Template{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return types.Template{}, fmt.Errorf("%w: expected an object, got %T", ErrMalformedRecord, v)
	}

	return Decode(obj)
}

// MarshalAll encodes templates in order.
func MarshalAll(templates []types.Template) ([]json.RawMessage, error) {
	raws := make([]json.RawMessage, 0, len(templates))
	for i, t := range templates {
		raw, err := Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		raws = append(raws, raw)
	}

	return raws, nil
}

// DecodeAll decodes every record, failing the whole batch on the first bad one.
func DecodeAll(raws []json.RawMessage) ([]types.Template, error) {
	templates := make([]types.Template, 0, len(raws))
	for i, raw := range raws {
		t, err := Unmarshal(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		templates = append(templates, t)
	}

	return templates, nil
}

// DecodeEach decodes every record it can. Records that fail are reported
// through skip and left out of the result.
func DecodeEach(raws []json.RawMessage, skip func(index int, err error)) []types.Template {
	templates := make([]types.Template, 0, len(raws))
	for i, raw := range raws {
		t, err := Unmarshal(raw)
		if err != nil {
			if skip != nil {
				skip(i, err)
			}
			continue
		}
		templates = append(templates, t)
	}

	return templates
}
