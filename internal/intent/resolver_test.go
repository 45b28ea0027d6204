package intent

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/dateutil"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
)

// Tuesday, 2025-06-10 KST.
var refNow = time.Date(2025, 6, 10, 14, 30, 0, 0, dateutil.Location())

func request(t *testing.T, body string) *kakao.SkillRequest {
	t.Helper()
	var req kakao.SkillRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	return &req
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, dateutil.Location())
}

func TestResolve_MealTomorrowParam(t *testing.T) {
	req := request(t, `{"action": {"params": {"mealType": "tomorrow"}}}`)

	got := Resolve(req, refNow)

	if got.Capability != CapabilityMeal {
		t.Errorf("capability = %s, want meal", got.Capability)
	}
	if got.SubType != SubTypeTomorrow {
		t.Errorf("subType = %s, want tomorrow", got.SubType)
	}
	want := day(2025, 6, 11)
	if !got.Range.Start.Equal(want) || !got.Range.End.Equal(want) {
		t.Errorf("range = %v..%v, want %v", got.Range.Start, got.Range.End, want)
	}
}

func TestResolve_UtteranceNextWeekSchedule(t *testing.T) {
	// Wednesday reference date, capability and period both from the utterance.
	wednesday := time.Date(2025, 6, 11, 9, 0, 0, 0, dateutil.Location())
	req := request(t, `{"userRequest": {"utterance": "다음 주 학사일정 알려줘"}}`)

	got := Resolve(req, wednesday)

	if got.Capability != CapabilitySchedule {
		t.Errorf("capability = %s, want schedule", got.Capability)
	}
	if !got.Range.Start.Equal(day(2025, 6, 16)) {
		t.Errorf("range start = %v, want next Monday 2025-06-16", got.Range.Start)
	}
	if !got.Range.End.Equal(day(2025, 6, 22)) {
		t.Errorf("range end = %v, want next Sunday 2025-06-22", got.Range.End)
	}
	if got.Range.Start.Weekday() != time.Monday {
		t.Errorf("range start weekday = %s, want Monday", got.Range.Start.Weekday())
	}
}

func TestResolve_CapabilityPrecedence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Capability
	}{
		{
			"skill param beats intent name",
			`{"intent": {"name": "timetable"}, "action": {"params": {"skill": "meal"}}}`,
			CapabilityMeal,
		},
		{
			"skill_type snake fallback",
			`{"action": {"params": {"skill_type": "examdday"}}}`,
			CapabilityExam,
		},
		{
			"intent substring beats utterance",
			`{"intent": {"name": "급식 조회"}, "userRequest": {"utterance": "시간표 알려줘"}}`,
			CapabilityMeal,
		},
		{
			"intent name exact match",
			`{"intent": {"name": "scheduleIntent"}}`,
			CapabilitySchedule,
		},
		{
			"utterance as last resort",
			`{"userRequest": {"utterance": "오늘 시간표 좀"}}`,
			CapabilityTimetable,
		},
		{
			"substring priority meal over exam",
			`{"intent": {"name": "급식 시험 뭐시기"}}`,
			CapabilityMeal,
		},
		{
			"nothing matches",
			`{"intent": {"name": "안녕하세요"}, "userRequest": {"utterance": "안녕"}}`,
			CapabilityHelp,
		},
		{
			"empty request",
			`{}`,
			CapabilityHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(request(t, tt.body), refNow); got.Capability != tt.want {
				t.Errorf("capability = %s, want %s", got.Capability, tt.want)
			}
		})
	}
}

func TestResolve_CapabilityFromSubTypeParam(t *testing.T) {
	req := request(t, `{"action": {"params": {"mealType": "today"}}}`)
	if got := Resolve(req, refNow); got.Capability != CapabilityMeal {
		t.Errorf("capability = %s, want meal inferred from mealType", got.Capability)
	}

	req = request(t, `{"action": {"params": {"timetableType": "tomorrow"}}}`)
	got := Resolve(req, refNow)
	if got.Capability != CapabilityTimetable || got.SubType != SubTypeTomorrow {
		t.Errorf("resolution = %s/%s, want timetable/tomorrow", got.Capability, got.SubType)
	}
}

func TestResolve_AllergySubType(t *testing.T) {
	tests := []string{
		`{"intent": {"name": "allergyIntent"}}`,
		`{"action": {"name": "meal", "params": {"mealType": "allergy"}}}`,
	}
	for _, body := range tests {
		got := Resolve(request(t, body), refNow)
		if got.Capability != CapabilityMeal || got.SubType != SubTypeAllergy {
			t.Errorf("Resolve(%s) = %s/%s, want meal/allergy", body, got.Capability, got.SubType)
		}
	}
}

func TestResolve_SubTypeDefaultsToday(t *testing.T) {
	req := request(t, `{"action": {"name": "meal", "params": {"mealType": "whenever"}}}`)
	if got := Resolve(req, refNow); got.SubType != SubTypeToday {
		t.Errorf("subType = %s, want today for unrecognized value", got.SubType)
	}
}

func TestResolve_PeriodRanges(t *testing.T) {
	tests := []struct {
		period     string
		start, end time.Time
	}{
		{"tomorrow", day(2025, 6, 11), day(2025, 6, 11)},
		{"day2", day(2025, 6, 12), day(2025, 6, 12)},
		{"week", day(2025, 6, 9), day(2025, 6, 15)},
		{"nextweek", day(2025, 6, 16), day(2025, 6, 22)},
		{"month", day(2025, 6, 1), day(2025, 6, 30)},
		{"nextmonth", day(2025, 7, 1), day(2025, 7, 31)},
		{"day", day(2025, 6, 10), day(2025, 6, 10)},
		{"bogus", day(2025, 6, 10), day(2025, 6, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			req := request(t, `{"action": {"name": "schedule", "params": {"period": "`+tt.period+`"}}}`)
			got := Resolve(req, refNow)
			if !got.Range.Start.Equal(tt.start) || !got.Range.End.Equal(tt.end) {
				t.Errorf("range = %v..%v, want %v..%v", got.Range.Start, got.Range.End, tt.start, tt.end)
			}
			if got.Range.End.Before(got.Range.Start) {
				t.Error("range end before start")
			}
		})
	}
}

func TestResolve_WeekOnSundayCoversEndingWeek(t *testing.T) {
	sunday := day(2025, 6, 15)
	req := request(t, `{"action": {"name": "schedule", "params": {"period": "week"}}}`)
	got := Resolve(req, sunday)
	if !got.Range.Start.Equal(day(2025, 6, 9)) || !got.Range.End.Equal(sunday) {
		t.Errorf("range = %v..%v, want the Monday-through-Sunday week ending today",
			got.Range.Start, got.Range.End)
	}
}

func TestResolve_UtterancePeriods(t *testing.T) {
	tests := []struct {
		utterance  string
		start, end time.Time
	}{
		{"다음 주 급식 알려줘", day(2025, 6, 16), day(2025, 6, 22)},
		{"다음주 급식", day(2025, 6, 16), day(2025, 6, 22)},
		{"이번 주 급식", day(2025, 6, 9), day(2025, 6, 15)},
		{"다음 달 급식", day(2025, 7, 1), day(2025, 7, 31)},
		{"이번 달 급식", day(2025, 6, 1), day(2025, 6, 30)},
		{"내일 급식 알려줘", day(2025, 6, 11), day(2025, 6, 11)},
		{"모레 급식", day(2025, 6, 12), day(2025, 6, 12)},
		{"급식 알려줘", day(2025, 6, 10), day(2025, 6, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			req := request(t, `{"userRequest": {"utterance": "`+tt.utterance+`"}}`)
			got := Resolve(req, refNow)
			if got.Capability != CapabilityMeal {
				t.Errorf("capability = %s, want meal", got.Capability)
			}
			if !got.Range.Start.Equal(tt.start) || !got.Range.End.Equal(tt.end) {
				t.Errorf("range = %v..%v, want %v..%v", got.Range.Start, got.Range.End, tt.start, tt.end)
			}
		})
	}
}

func TestResolve_ExplicitDateAnchorsPeriod(t *testing.T) {
	// An explicit date parameter anchors the period mapping.
	req := request(t, `{"action": {"name": "meal", "params": {"mealDate": "2025-06-20", "period": "nextweek"}}}`)
	got := Resolve(req, refNow)
	if !got.Range.Start.Equal(day(2025, 6, 23)) || !got.Range.End.Equal(day(2025, 6, 29)) {
		t.Errorf("range = %v..%v, want 2025-06-23..2025-06-29", got.Range.Start, got.Range.End)
	}

	// Without a period signal the explicit date is the whole range.
	req = request(t, `{"action": {"name": "meal", "params": {"date": "20250620"}}}`)
	got = Resolve(req, refNow)
	if !got.Range.Start.Equal(day(2025, 6, 20)) || !got.Range.End.Equal(day(2025, 6, 20)) {
		t.Errorf("range = %v..%v, want single day 2025-06-20", got.Range.Start, got.Range.End)
	}
}

func TestResolve_ExplicitRangeWinsOverPeriod(t *testing.T) {
	req := request(t, `{"action": {"name": "schedule", "params": {
		"startDate": "2025-06-02", "endDate": "2025-06-05", "period": "nextmonth"
	}}}`)
	got := Resolve(req, refNow)
	if !got.Range.Start.Equal(day(2025, 6, 2)) || !got.Range.End.Equal(day(2025, 6, 5)) {
		t.Errorf("range = %v..%v, want explicit 2025-06-02..2025-06-05", got.Range.Start, got.Range.End)
	}
}

func TestResolve_InvertedRangeSwapped(t *testing.T) {
	req := request(t, `{"action": {"params": {"startDate": "2025-06-05", "endDate": "2025-06-02"}}}`)
	got := Resolve(req, refNow)
	if !got.Range.Start.Equal(day(2025, 6, 2)) || !got.Range.End.Equal(day(2025, 6, 5)) {
		t.Errorf("range = %v..%v, want swapped to 2025-06-02..2025-06-05", got.Range.Start, got.Range.End)
	}
}

func TestResolve_StartDateOnly(t *testing.T) {
	req := request(t, `{"action": {"detailParams": {"startDate": {"value": "2025-06-03"}}}}`)
	got := Resolve(req, refNow)
	if !got.Range.Start.Equal(day(2025, 6, 3)) || !got.Range.End.Equal(day(2025, 6, 3)) {
		t.Errorf("range = %v..%v, want single day 2025-06-03", got.Range.Start, got.Range.End)
	}
}

func TestResolve_WrappedDetailParamDate(t *testing.T) {
	req := request(t, `{"action": {
		"name": "schedule",
		"detailParams": {"scheduleDate": {"origin": "6월 20일", "value": {"year": 2025, "month": 6, "day": 20}}}
	}}`)
	got := Resolve(req, refNow)
	if !got.Range.Start.Equal(day(2025, 6, 20)) {
		t.Errorf("range start = %v, want 2025-06-20 from decomposed date", got.Range.Start)
	}
}

func TestResolve_MalformedDegradesToDefaults(t *testing.T) {
	req := request(t, `{"action": {"params": {"mealDate": "nonsense", "period": ""}}}`)
	got := Resolve(req, refNow)
	if got.Capability != CapabilityHelp {
		t.Errorf("capability = %s, want help", got.Capability)
	}
	if got.SubType != SubTypeToday {
		t.Errorf("subType = %s, want today", got.SubType)
	}
	today := day(2025, 6, 10)
	if !got.Range.Start.Equal(today) || !got.Range.End.Equal(today) {
		t.Errorf("range = %v..%v, want today", got.Range.Start, got.Range.End)
	}
	if !got.Range.SingleDay() {
		t.Error("default range should be a single day")
	}
}
