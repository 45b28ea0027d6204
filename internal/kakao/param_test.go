package kakao

import (
	"encoding/json"
	"testing"
)

// classifyJSON decodes a JSON literal and classifies it, mirroring how
// values arrive from the webhook body.
func classifyJSON(t *testing.T, literal string) ParamValue {
	t.Helper()
	var raw any
	if err := json.Unmarshal([]byte(literal), &raw); err != nil {
		t.Fatalf("bad test literal %q: %v", literal, err)
	}
	return Classify(raw)
}

func TestUnwrap_Primitives(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    string
		wantOK  bool
	}{
		{"string", `"tomorrow"`, "tomorrow", true},
		{"integer number", `20250610`, "20250610", true},
		{"fractional number", `1.5`, "1.5", true},
		{"bool", `true`, "true", true},
		{"null", `null`, "", false},
		{"empty string", `""`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifyJSON(t, tt.literal).Unwrap()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Unwrap(%s) = (%q, %v), want (%q, %v)", tt.literal, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestUnwrap_Idempotent(t *testing.T) {
	// Unwrapping an already-primitive value returns it unchanged.
	p := ParamValue{Kind: KindPrimitive, Primitive: "2025-01-01"}
	got, ok := p.Unwrap()
	if !ok || got != "2025-01-01" {
		t.Errorf("Unwrap(primitive) = (%q, %v)", got, ok)
	}
}

func TestUnwrap_NestedWrappers(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    string
	}{
		{"single wrapper", `{"value": "2025-01-01"}`, "2025-01-01"},
		{"double wrapper", `{"value": {"value": "2025-01-01"}}`, "2025-01-01"},
		{"origin fallback", `{"origin": "내일"}`, "내일"},
		{"value precedes origin", `{"origin": "내일", "value": "2025-06-11"}`, "2025-06-11"},
		{"resolved key", `{"resolved": "next week"}`, "next week"},
		{"date key", `{"date": "20250610"}`, "20250610"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifyJSON(t, tt.literal).Unwrap()
			if !ok || got != tt.want {
				t.Errorf("Unwrap(%s) = (%q, %v), want %q", tt.literal, got, ok, tt.want)
			}
		})
	}
}

func TestUnwrap_DateParts(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    string
		wantOK  bool
	}{
		{"plain aliases", `{"year": 2025, "month": 6, "day": 3}`, "2025-06-03", true},
		{"string fields", `{"year": "2025", "month": "11", "day": "28"}`, "2025-11-28", true},
		{"short aliases", `{"y": 2025, "m": 1, "d": 9}`, "2025-01-09", true},
		{"format aliases", `{"YYYY": 2025, "MM": 12, "DD": 25}`, "2025-12-25", true},
		{"missing day", `{"year": 2025, "month": 6}`, "", false},
		{"out of range month", `{"year": 2025, "month": 13, "day": 1}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifyJSON(t, tt.literal).Unwrap()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Unwrap(%s) = (%q, %v), want (%q, %v)", tt.literal, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestUnwrap_Lists(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    string
		wantOK  bool
	}{
		{"first defined element", `[null, "", "second"]`, "second", true},
		{"wrapped elements", `[{"value": "a"}, "b"]`, "a", true},
		{"all undefined", `[null, {}, ""]`, "", false},
		{"empty list", `[]`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifyJSON(t, tt.literal).Unwrap()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Unwrap(%s) = (%q, %v), want (%q, %v)", tt.literal, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestUnwrap_UnknownObject(t *testing.T) {
	got, ok := classifyJSON(t, `{"foo": "bar"}`).Unwrap()
	if ok {
		t.Errorf("Unwrap of unknown object = (%q, %v), want undefined", got, ok)
	}
}
