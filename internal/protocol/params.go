package protocol

import (
	"math"
	"strconv"
	"strings"

	"github.com/status-im/defi-native-core/internal/cerrors"
)

// Params is the untyped request parameter object. Each handler performs its
// own explicit, typed extraction; there is no reflection-based binding.
type Params map[string]any

func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// String extracts a required non-empty string field.
func (p Params) String(name string) (string, error) {
	raw, ok := p[name]
	if !ok {
		return "", cerrors.Newf(cerrors.CodeUsage, "missing %s", name)
	}
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", cerrors.Newf(cerrors.CodeUsage, "invalid %s: expected a non-empty string", name)
	}
	return s, nil
}

// OptionalString extracts an optional string field, returning def when absent.
func (p Params) OptionalString(name, def string) (string, error) {
	raw, ok := p[name]
	if !ok {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", cerrors.Newf(cerrors.CodeUsage, "invalid %s: expected a string", name)
	}
	return s, nil
}

// OptionalInt64 extracts an optional integer field. JSON numbers and decimal
// strings are both accepted; fractional numbers are rejected.
func (p Params) OptionalInt64(name string, def int64) (int64, error) {
	raw, ok := p[name]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, cerrors.Newf(cerrors.CodeUsage, "invalid %s: expected an integer", name)
		}
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, cerrors.Newf(cerrors.CodeUsage, "invalid %s: expected an integer", name)
		}
		return i, nil
	default:
		return 0, cerrors.Newf(cerrors.CodeUsage, "invalid %s: expected an integer", name)
	}
}

// OptionalFloat64 extracts an optional numeric field.
func (p Params) OptionalFloat64(name string, def float64) (float64, error) {
	raw, ok := p[name]
	if !ok {
		return def, nil
	}
	v, ok := raw.(float64)
	if !ok {
		return 0, cerrors.Newf(cerrors.CodeUsage, "invalid %s: expected a number", name)
	}
	return v, nil
}

// OptionalBool extracts an optional boolean field.
func (p Params) OptionalBool(name string, def bool) (bool, error) {
	raw, ok := p[name]
	if !ok {
		return def, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, cerrors.Newf(cerrors.CodeUsage, "invalid %s: expected a boolean", name)
	}
	return v, nil
}

// StringSlice extracts a required array-of-strings field.
func (p Params) StringSlice(name string) ([]string, error) {
	raw, ok := p[name]
	if !ok {
		return nil, cerrors.Newf(cerrors.CodeUsage, "missing %s", name)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, cerrors.Newf(cerrors.CodeUsage, "invalid %s: expected an array of strings", name)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, cerrors.Newf(cerrors.CodeUsage, "invalid %s: element %d is not a string", name, i)
		}
		out = append(out, s)
	}
	return out, nil
}

// Any returns the raw value of an optional field.
func (p Params) Any(name string) (any, bool) {
	raw, ok := p[name]
	return raw, ok
}
