package skill

import (
	"github.com/yunseo-dev/neis-kakaobot-go/internal/intent"
)

// Fixed reply strings live here as data so wording changes never touch
// handler logic.

// noDataMessages are the empty-result replies, formatted with the
// display form of the requested date or range.
var noDataMessages = map[intent.Capability]string{
	intent.CapabilityMeal:       "%s 급식 정보가 없습니다.",
	intent.CapabilityTimetable:  "%s 시간표 정보가 없습니다.",
	intent.CapabilitySchedule:   "%s 학사 일정이 없습니다.",
	intent.CapabilityAssessment: "예정된 수행평가가 없습니다.",
	intent.CapabilityExam:       "%s 시험 일정이 없습니다.",
	intent.CapabilityDday:       "등록된 디데이 일정이 없습니다.",
}

// apologyMessages are the per-capability replies for upstream
// failures. The chat platform always gets one of these, never an
// error page.
var apologyMessages = map[intent.Capability]string{
	intent.CapabilityMeal:       "급식 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.",
	intent.CapabilityTimetable:  "시간표 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.",
	intent.CapabilitySchedule:   "학사 일정을 불러오지 못했습니다. 잠시 후 다시 시도해주세요.",
	intent.CapabilityAssessment: "수행평가 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.",
	intent.CapabilityExam:       "시험 일정을 불러오지 못했습니다. 잠시 후 다시 시도해주세요.",
	intent.CapabilityDday:       "디데이 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.",
}

const fallbackApology = "정보를 불러오는데 실패했습니다. 잠시 후 다시 시도해주세요."

const helpText = "카카오톡에서 사용할 수 있는 예시 질문입니다:\n" +
	"• 오늘 급식 알려줘\n" +
	"• 이번 주 학사일정 알려줘\n" +
	"• 내일 시간표 알려줘\n" +
	"• 다음 시험 일정 알려줘\n" +
	"• 다가오는 수행평가 알려줘\n" +
	"• 디데이 알려줘\n" +
	"원하는 날짜가 있다면 \"2025년 5월 3일 급식\"처럼 말해보세요."

const allergyHeader = "급식 알레르기 유발 식품 번호표입니다.\n메뉴 뒤 괄호 속 숫자가 아래 번호를 가리킵니다.\n\n"

const noMenuPlaceholder = "등록된 메뉴가 없습니다."

// apology returns the apology reply for a capability.
func apology(capability intent.Capability) string {
	if msg, ok := apologyMessages[capability]; ok {
		return msg
	}
	return fallbackApology
}
