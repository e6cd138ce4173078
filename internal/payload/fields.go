// Package payload reads loosely shaped JSON returned by the donation backend.
//
// Bodies are decoded into `any` with json.Number enabled, so callers never
// assume a key exists. Lookups walk an ordered alias list and the first alias
// holding a usable value wins.
package payload

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Decode reads a JSON document preserving numbers as json.Number.
func Decode(dec *json.Decoder) (any, error) {
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// Object returns v as a JSON object when it is one.
func Object(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil, false
	}
	return obj, true
}

// Has reports whether obj owns any of the keys, whatever the value.
func Has(obj map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

// Lookup returns the value of the first alias that is set. Null and blank
// string values count as unset so later aliases can fill in.
func Lookup(obj map[string]any, aliases ...string) (any, bool) {
	for _, key := range aliases {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// LookupString returns the first alias rendered as a string, or "".
func LookupString(obj map[string]any, aliases ...string) string {
	for _, key := range aliases {
		v, ok := Lookup(obj, key)
		if !ok {
			continue
		}
		if s, ok := String(v); ok {
			return s
		}
	}
	return ""
}

// String renders scalar JSON values as strings.
func String(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case json.Number:
		return t.String(), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// Number coerces v into a finite float64. Blank strings read as zero.
func Number(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, true
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Bool reads booleans, "true"/"false" style strings and numbers.
func Bool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, false
		}
		return b, true
	case json.Number, float64, int, int64:
		f, ok := Number(t)
		if !ok {
			return false, false
		}
		return f != 0, true
	default:
		return false, false
	}
}
