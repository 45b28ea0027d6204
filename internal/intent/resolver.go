// Package intent turns a raw skill request into a capability, a
// sub-type, and a concrete date range. Resolution never fails: every
// ambiguous or malformed input degrades to a documented default so the
// chat surface always gets a reply.
package intent

import (
	"strings"
	"time"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/dateutil"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
)

// Capability identifies which handler serves the request.
type Capability string

const (
	CapabilityMeal       Capability = "meal"
	CapabilityTimetable  Capability = "timetable"
	CapabilitySchedule   Capability = "schedule"
	CapabilityAssessment Capability = "assessment"
	CapabilityDday       Capability = "dday"
	CapabilityExam       Capability = "exam"
	CapabilityHelp       Capability = "help"
)

// Sub-types recognized by the meal and timetable capabilities.
const (
	SubTypeToday    = "today"
	SubTypeTomorrow = "tomorrow"
	SubTypeAllergy  = "allergy"
)

// Range is an inclusive calendar date range, both ends at midnight KST.
type Range struct {
	Start time.Time
	End   time.Time
}

// SingleDay reports whether the range covers exactly one calendar day.
func (r Range) SingleDay() bool {
	return dateutil.SameDay(r.Start, r.End)
}

// Resolution is the immutable outcome of resolving one request.
type Resolution struct {
	Capability Capability
	SubType    string
	Range      Range
}

// capabilityKeys maps exact action/intent/skill labels to a capability.
var capabilityKeys = map[string]Capability{
	"meal":             CapabilityMeal,
	"mealintent":       CapabilityMeal,
	"meal_today":       CapabilityMeal,
	"timetable":        CapabilityTimetable,
	"timetableintent":  CapabilityTimetable,
	"schedule":         CapabilitySchedule,
	"scheduleintent":   CapabilitySchedule,
	"assessment":       CapabilityAssessment,
	"assessmentintent": CapabilityAssessment,
	"dday":             CapabilityDday,
	"ddayintent":       CapabilityDday,
	"exam":             CapabilityExam,
	"examdday":         CapabilityExam,
	"examintent":       CapabilityExam,
	"help":             CapabilityHelp,
	"helpintent":       CapabilityHelp,
}

// allergyKeys force the meal capability with the allergy sub-type.
var allergyKeys = map[string]bool{
	"allergy":       true,
	"allergyintent": true,
}

// capabilityKeyword is one substring probe. Probes run in a fixed
// priority order so that, for example, "시험" never shadows "학사일정".
type capabilityKeyword struct {
	capability Capability
	needles    []string
}

var capabilityKeywords = []capabilityKeyword{
	{CapabilityMeal, []string{"meal", "급식"}},
	{CapabilityTimetable, []string{"timetable", "시간표"}},
	{CapabilitySchedule, []string{"schedule", "학사일정"}},
	{CapabilityAssessment, []string{"assessment", "수행평가"}},
	{CapabilityDday, []string{"dday", "d-day", "디데이"}},
	{CapabilityExam, []string{"exam", "시험"}},
}

// Relative period tokens, as sent in the period parameter.
const (
	periodDay       = "day"
	periodTomorrow  = "tomorrow"
	periodDay2      = "day2"
	periodWeek      = "week"
	periodNextWeek  = "nextweek"
	periodMonth     = "month"
	periodNextMonth = "nextmonth"
)

// utterancePeriods maps Korean period phrases to period tokens.
// Earlier entries win; "다음 주" must be probed before "내일" so that
// compound utterances resolve to the broader period.
var utterancePeriods = []struct {
	needles []string
	period  string
}{
	{[]string{"다음 주", "다음주"}, periodNextWeek},
	{[]string{"이번 주", "이번주"}, periodWeek},
	{[]string{"다음 달", "다음달"}, periodNextMonth},
	{[]string{"이번 달", "이번달"}, periodMonth},
	{[]string{"내일"}, periodTomorrow},
	{[]string{"모레"}, periodDay2},
}

var dateParamKeys = []string{"mealDate", "scheduleDate", "timetableDate", "targetDate", "date", "day", "sysDate"}

// Resolve determines the capability, sub-type, and date range for one
// skill request, evaluated against now. It never returns an error:
// unrecognizable input yields the help capability with today's range.
func Resolve(req *kakao.SkillRequest, now time.Time) Resolution {
	today := dateutil.Midnight(now)

	capability, subType := resolveCapability(req)
	if subType == "" {
		subType = resolveSubType(req, capability)
	}
	rng := resolveRange(req, subType, today)

	return Resolution{Capability: capability, SubType: subType, Range: rng}
}

// firstParam returns the first defined value among the given logical
// keys, probing params before detailParams with snake_case fallback.
func firstParam(req *kakao.SkillRequest, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := req.Param(key); ok {
			return v, true
		}
	}
	return "", false
}

// resolveCapability applies the precedence chain: explicit skill
// parameter, exact label match, label substring scan, sub-type
// inference, utterance scan, finally help. The second return value is
// a forced sub-type for labels that imply one.
func resolveCapability(req *kakao.SkillRequest) (Capability, string) {
	labels := make([]string, 0, 3)
	if v, ok := firstParam(req, "skill", "skillType"); ok {
		labels = append(labels, normalizeLabel(v))
	}
	if req.Action.Name != "" {
		labels = append(labels, normalizeLabel(req.Action.Name))
	}
	if req.Intent.Name != "" {
		labels = append(labels, normalizeLabel(req.Intent.Name))
	}

	for _, label := range labels {
		if allergyKeys[label] {
			return CapabilityMeal, SubTypeAllergy
		}
		if c, ok := capabilityKeys[label]; ok {
			return c, ""
		}
	}

	haystack := strings.ToLower(req.Action.Name + " " + req.Intent.Name)
	if c, ok := scanKeywords(haystack); ok {
		return c, ""
	}

	// A recognized sub-type value alone still identifies the capability.
	if v, ok := req.Param("mealType"); ok {
		switch normalizeLabel(v) {
		case SubTypeToday, SubTypeTomorrow:
			return CapabilityMeal, ""
		case SubTypeAllergy:
			return CapabilityMeal, SubTypeAllergy
		}
	}
	if v, ok := req.Param("timetableType"); ok {
		switch normalizeLabel(v) {
		case SubTypeToday, SubTypeTomorrow:
			return CapabilityTimetable, ""
		}
	}

	if c, ok := scanKeywords(strings.ToLower(req.Utterance())); ok {
		return c, ""
	}

	return CapabilityHelp, ""
}

func scanKeywords(haystack string) (Capability, bool) {
	if strings.TrimSpace(haystack) == "" {
		return "", false
	}
	for _, kw := range capabilityKeywords {
		for _, needle := range kw.needles {
			if strings.Contains(haystack, needle) {
				return kw.capability, true
			}
		}
	}
	return "", false
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// resolveSubType constrains the type parameter to the enum the
// capability recognizes, defaulting to today.
func resolveSubType(req *kakao.SkillRequest, capability Capability) string {
	switch capability {
	case CapabilityMeal:
		if v, ok := req.Param("mealType"); ok {
			switch normalizeLabel(v) {
			case SubTypeTomorrow:
				return SubTypeTomorrow
			case SubTypeAllergy:
				return SubTypeAllergy
			}
		}
	case CapabilityTimetable:
		if v, ok := req.Param("timetableType"); ok {
			if normalizeLabel(v) == SubTypeTomorrow {
				return SubTypeTomorrow
			}
		}
	}
	return SubTypeToday
}

// resolveRange derives the inclusive date range. An explicit full
// range beats any period signal; a period parameter beats the
// utterance scan; the utterance scan runs only when no parameter
// carried a signal.
func resolveRange(req *kakao.SkillRequest, subType string, today time.Time) Range {
	base := today
	if v, ok := firstParam(req, dateParamKeys...); ok {
		if d, ok := dateutil.ParseFlexible(v); ok {
			base = d
		}
	}

	start, startOK := parseDateParam(req, "startDate")
	end, endOK := parseDateParam(req, "endDate")
	if startOK && endOK {
		if end.Before(start) {
			start, end = end, start
		}
		return Range{Start: start, End: end}
	}
	if startOK {
		return Range{Start: start, End: start}
	}

	return periodRange(detectPeriod(req, subType), base)
}

func parseDateParam(req *kakao.SkillRequest, key string) (time.Time, bool) {
	v, ok := req.Param(key)
	if !ok {
		return time.Time{}, false
	}
	return dateutil.ParseFlexible(v)
}

// detectPeriod picks the relative period token: explicit period
// parameter first, then a period-valued sub-type, then the Korean
// phrase scan over the utterance, else the single-day default.
func detectPeriod(req *kakao.SkillRequest, subType string) string {
	if v, ok := req.Param("period"); ok {
		return normalizeLabel(v)
	}

	if subType == SubTypeTomorrow {
		return periodTomorrow
	}

	utterance := req.Utterance()
	for _, up := range utterancePeriods {
		for _, needle := range up.needles {
			if strings.Contains(utterance, needle) {
				return up.period
			}
		}
	}

	return periodDay
}

// periodRange maps a period token to a concrete range anchored at base.
// Unknown tokens fall back to the single-day default.
func periodRange(period string, base time.Time) Range {
	switch period {
	case periodTomorrow:
		d := dateutil.AddDays(base, 1)
		return Range{Start: d, End: d}
	case periodDay2:
		d := dateutil.AddDays(base, 2)
		return Range{Start: d, End: d}
	case periodWeek:
		monday := dateutil.StartOfWeek(base)
		return Range{Start: monday, End: dateutil.AddDays(monday, 6)}
	case periodNextWeek:
		monday := dateutil.AddDays(dateutil.StartOfWeek(base), 7)
		return Range{Start: monday, End: dateutil.AddDays(monday, 6)}
	case periodMonth:
		return Range{Start: dateutil.StartOfMonth(base), End: dateutil.EndOfMonth(base)}
	case periodNextMonth:
		first := dateutil.StartOfMonth(dateutil.AddDays(dateutil.EndOfMonth(base), 1))
		return Range{Start: first, End: dateutil.EndOfMonth(first)}
	default:
		return Range{Start: base, End: base}
	}
}
