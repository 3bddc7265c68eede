package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// envelope is a request body keyed by the server's entity names, e.g.
// {"Invoice": {...}, "InvoiceItem": [...]}. Keys keep insertion order and
// empty sections are left out, so the server treats them as not provided.
type envelope struct {
	keys   []string
	values map[string]any
}

func newEnvelope() *envelope {
	return &envelope{values: map[string]any{}}
}

// add sets key unless value is empty.
func (e *envelope) add(key string, value any) *envelope {
	if isEmpty(value) {
		return e
	}

	return e.set(key, value)
}

// set sets key unconditionally.
func (e *envelope) set(key string, value any) *envelope {
	if _, exists := e.values[key]; !exists {
		e.keys = append(e.keys, key)
	}

	e.values[key] = value

	return e
}

// tags adds the {"Tag": {"Tag": [ids]}} section when ids is non-empty.
func (e *envelope) tags(ids []int) *envelope {
	if len(ids) == 0 {
		return e
	}

	return e.set("Tag", map[string][]int{"Tag": ids})
}

// MarshalJSON implements json.Marshaler.
func (e *envelope) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer

	buffer.WriteByte('{')

	for i, key := range e.keys {
		if i > 0 {
			buffer.WriteByte(',')
		}

		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", key, err)
		}

		encodedValue, err := json.Marshal(e.values[key])
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}

		buffer.Write(encodedKey)
		buffer.WriteByte(':')
		buffer.Write(encodedValue)
	}

	buffer.WriteByte('}')

	return buffer.Bytes(), nil
}

// withID returns a copy of fields with "id" set. The caller's map is not
// modified.
func withID(fields sfapi.Fields, id int) sfapi.Fields {
	return withField(fields, "id", id)
}

// withField returns a copy of fields with key set.
func withField(fields sfapi.Fields, key string, value any) sfapi.Fields {
	result := make(sfapi.Fields, len(fields)+1)
	for k, v := range fields {
		result[k] = v
	}

	result[key] = value

	return result
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	switch v := value.(type) {
	case sfapi.Fields:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	case []sfapi.Fields:
		return len(v) == 0
	case string:
		return v == ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
