// Package query encodes list parameters into the two URL conventions used by
// the SuperFaktura API.
package query

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Param is one key/value pair. A nil Value is dropped when encoding.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered parameter set.
type Params []Param

// Add appends a parameter and returns the extended set.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// Converter turns a parameter set into a URL fragment.
type Converter interface {
	Convert(params Params) string
}

// NamedParams renders "key:value" pairs joined by "/" with the colon escaped,
// e.g. "listinfo%3A1/page%3A2". Each pair is escaped as a whole before the
// separator is substituted, so ":" "@" and "/" inside values stay escaped.
type NamedParams struct{}

// Convert implements Converter.
func (NamedParams) Convert(params Params) string {
	pairs := make([]string, 0, len(params))

	for _, param := range params {
		value, ok := Render(param.Value)
		if !ok {
			continue
		}

		pair := url.Values{param.Key: {value}}.Encode()
		pairs = append(pairs, strings.Replace(pair, "=", "%3A", 1))
	}

	return strings.Join(pairs, "/")
}

// QueryString renders a standard "k=v&k2=v2" query without the leading "?",
// preserving parameter order.
type QueryString struct{}

// Convert implements Converter.
func (QueryString) Convert(params Params) string {
	pairs := make([]string, 0, len(params))

	for _, param := range params {
		value, ok := Render(param.Value)
		if !ok {
			continue
		}

		pairs = append(pairs, url.QueryEscape(param.Key)+"="+url.QueryEscape(value))
	}

	return strings.Join(pairs, "&")
}

// Render formats a scalar the way the API expects it. It reports false for
// nil and typed nil pointers.
func Render(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		if v {
			return "1", true
		}

		return "0", true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		if isNilPointer(value) {
			return "", false
		}

		return v.String(), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}

		return Render(rv.Elem().Interface())
	}

	return fmt.Sprint(value), true
}

func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
