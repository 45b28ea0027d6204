package kakao

import (
	"encoding/json"
	"testing"
)

func decodeRequest(t *testing.T, body string) *SkillRequest {
	t.Helper()
	var req SkillRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	return &req
}

func TestSkillRequest_ParamPrecedence(t *testing.T) {
	req := decodeRequest(t, `{
		"intent": {"id": "i1", "name": "급식 조회"},
		"action": {
			"id": "a1",
			"name": "meal",
			"params": {"mealType": "tomorrow"},
			"detailParams": {"mealType": {"origin": "내일", "value": "day1"}}
		},
		"userRequest": {"utterance": "내일 급식", "user": {"id": "u1"}}
	}`)

	// params wins over detailParams for the same key.
	got, ok := req.Param("mealType")
	if !ok || got != "tomorrow" {
		t.Errorf("Param(mealType) = (%q, %v), want tomorrow", got, ok)
	}
}

func TestSkillRequest_ParamSnakeFallback(t *testing.T) {
	req := decodeRequest(t, `{
		"action": {"params": {"meal_type": "week"}}
	}`)

	got, ok := req.Param("mealType")
	if !ok || got != "week" {
		t.Errorf("Param(mealType) = (%q, %v), want week via snake_case", got, ok)
	}
}

func TestSkillRequest_ParamDetailOnly(t *testing.T) {
	req := decodeRequest(t, `{
		"action": {
			"params": {},
			"detailParams": {"timetable_type": {"value": "nextweek"}}
		}
	}`)

	got, ok := req.Param("timetableType")
	if !ok || got != "nextweek" {
		t.Errorf("Param(timetableType) = (%q, %v), want nextweek", got, ok)
	}
}

func TestSkillRequest_ParamAbsent(t *testing.T) {
	req := decodeRequest(t, `{"action": {"params": {"mealType": ""}}}`)
	if got, ok := req.Param("mealType"); ok {
		t.Errorf("Param of empty value = (%q, %v), want absent", got, ok)
	}
	if got, ok := req.Param("missing"); ok {
		t.Errorf("Param of missing key = (%q, %v), want absent", got, ok)
	}
}

func TestSkillRequest_UtteranceAndUserID(t *testing.T) {
	req := decodeRequest(t, `{
		"userRequest": {"utterance": "다음 주 시간표", "user": {"id": "kakao-user-7"}}
	}`)
	if got := req.Utterance(); got != "다음 주 시간표" {
		t.Errorf("Utterance() = %q", got)
	}
	if got := req.UserID(); got != "kakao-user-7" {
		t.Errorf("UserID() = %q", got)
	}

	var empty SkillRequest
	if got := empty.Utterance(); got != "" {
		t.Errorf("Utterance() on zero value = %q", got)
	}
	if got := empty.UserID(); got != "" {
		t.Errorf("UserID() on zero value = %q", got)
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"mealType", "meal_type"},
		{"timetableType", "timetable_type"},
		{"already_snake", "already_snake"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SnakeCase(tt.in); got != tt.want {
			t.Errorf("SnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
