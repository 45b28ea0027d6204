package kakao

import (
	"fmt"
	"strconv"
)

// Kind tags the shape of a parameter value.
type Kind int

const (
	// KindAbsent marks a missing or empty value.
	KindAbsent Kind = iota
	// KindPrimitive is a plain scalar (string, number, bool).
	KindPrimitive
	// KindObject is a nested value holder ({value: ..., origin: ...} or
	// a decomposed {year, month, day} date).
	KindObject
	// KindList is an array of parameter values.
	KindList
)

// ParamValue is a tagged union over the shapes the platform sends for a
// single parameter. Build one with Classify and resolve it with Unwrap.
type ParamValue struct {
	Kind      Kind
	Primitive string
	Object    map[string]ParamValue
	List      []ParamValue
}

// metadataKeys are the wrapper keys tried, in fixed priority order, when
// unwrapping an object value.
var metadataKeys = []string{"value", "origin", "resolved", "text", "label", "date"}

// Aliases for decomposed date fields.
var (
	yearKeys  = []string{"year", "YYYY", "y"}
	monthKeys = []string{"month", "MM", "m"}
	dayKeys   = []string{"day", "DD", "d"}
)

// Classify builds a ParamValue from a raw decoded JSON value.
func Classify(raw any) ParamValue {
	switch v := raw.(type) {
	case nil:
		return ParamValue{Kind: KindAbsent}
	case string:
		if v == "" {
			return ParamValue{Kind: KindAbsent}
		}
		return ParamValue{Kind: KindPrimitive, Primitive: v}
	case bool:
		return ParamValue{Kind: KindPrimitive, Primitive: strconv.FormatBool(v)}
	case float64:
		// encoding/json decodes all numbers as float64; render integral
		// values without a fraction so "20250610" survives the trip.
		if v == float64(int64(v)) {
			return ParamValue{Kind: KindPrimitive, Primitive: strconv.FormatInt(int64(v), 10)}
		}
		return ParamValue{Kind: KindPrimitive, Primitive: strconv.FormatFloat(v, 'f', -1, 64)}
	case []any:
		list := make([]ParamValue, 0, len(v))
		for _, item := range v {
			list = append(list, Classify(item))
		}
		return ParamValue{Kind: KindList, List: list}
	case map[string]any:
		obj := make(map[string]ParamValue, len(v))
		for k, item := range v {
			obj[k] = Classify(item)
		}
		return ParamValue{Kind: KindObject, Object: obj}
	default:
		return ParamValue{Kind: KindPrimitive, Primitive: fmt.Sprint(v)}
	}
}

// Unwrap recursively resolves a ParamValue to a primitive string.
//
// Rules, in order:
//   - a primitive returns itself (unwrapping is idempotent)
//   - a list returns its first element that unwraps to a defined value
//   - an object tries the metadata keys (value, origin, resolved, text,
//     label, date) in fixed order, recursing into each
//   - an object with year+month+day fields (under any alias) synthesizes
//     a zero-padded ISO date string
//   - anything else is undefined (ok=false)
func (p ParamValue) Unwrap() (string, bool) {
	switch p.Kind {
	case KindPrimitive:
		return p.Primitive, true

	case KindList:
		for _, item := range p.List {
			if v, ok := item.Unwrap(); ok {
				return v, true
			}
		}
		return "", false

	case KindObject:
		for _, key := range metadataKeys {
			if nested, present := p.Object[key]; present {
				if v, ok := nested.Unwrap(); ok {
					return v, true
				}
			}
		}
		if iso, ok := p.dateParts(); ok {
			return iso, true
		}
		return "", false

	default:
		return "", false
	}
}

// dateParts synthesizes an ISO date from decomposed year/month/day fields.
func (p ParamValue) dateParts() (string, bool) {
	year, ok := p.intField(yearKeys)
	if !ok {
		return "", false
	}
	month, ok := p.intField(monthKeys)
	if !ok {
		return "", false
	}
	day, ok := p.intField(dayKeys)
	if !ok {
		return "", false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

func (p ParamValue) intField(aliases []string) (int, bool) {
	for _, key := range aliases {
		nested, present := p.Object[key]
		if !present {
			continue
		}
		v, ok := nested.Unwrap()
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
