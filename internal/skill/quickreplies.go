package skill

import (
	"github.com/yunseo-dev/neis-kakaobot-go/internal/intent"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
)

// quickReplies returns the follow-up suggestions shown under a reply
// for the given capability.
func quickReplies(capability intent.Capability) []kakao.QuickReply {
	switch capability {
	case intent.CapabilityMeal:
		return []kakao.QuickReply{
			kakao.NewQuickReply("오늘 급식", "오늘 급식 알려줘"),
			kakao.NewQuickReply("내일 급식", "내일 급식 알려줘"),
			kakao.NewQuickReply("학사일정", "이번 주 학사일정 알려줘"),
		}
	case intent.CapabilityTimetable:
		return []kakao.QuickReply{
			kakao.NewQuickReply("오늘 시간표", "오늘 시간표 알려줘"),
			kakao.NewQuickReply("내일 시간표", "내일 시간표 알려줘"),
			kakao.NewQuickReply("학사일정", "이번 주 학사일정 알려줘"),
		}
	case intent.CapabilitySchedule:
		return []kakao.QuickReply{
			kakao.NewQuickReply("이번 주 일정", "이번 주 학사일정 알려줘"),
			kakao.NewQuickReply("다음 주 일정", "다음 주 학사일정 알려줘"),
			kakao.NewQuickReply("시험 일정", "다음 시험 일정 알려줘"),
		}
	case intent.CapabilityExam:
		return []kakao.QuickReply{
			kakao.NewQuickReply("시험 일정", "다음 시험 일정 알려줘"),
			kakao.NewQuickReply("수행평가", "다가오는 수행평가 알려줘"),
			kakao.NewQuickReply("시간표", "오늘 시간표 알려줘"),
		}
	case intent.CapabilityAssessment:
		return []kakao.QuickReply{
			kakao.NewQuickReply("수행평가", "다가오는 수행평가 알려줘"),
			kakao.NewQuickReply("시험 일정", "다음 시험 일정 알려줘"),
			kakao.NewQuickReply("급식", "오늘 급식 알려줘"),
		}
	case intent.CapabilityDday:
		return []kakao.QuickReply{
			kakao.NewQuickReply("디데이", "디데이 알려줘"),
			kakao.NewQuickReply("시험 일정", "다음 시험 일정 알려줘"),
			kakao.NewQuickReply("도움말", "도움말"),
		}
	default:
		return []kakao.QuickReply{
			kakao.NewQuickReply("도움말", "도움말"),
			kakao.NewQuickReply("오늘 급식", "오늘 급식 알려줘"),
			kakao.NewQuickReply("시간표", "오늘 시간표 알려줘"),
		}
	}
}
