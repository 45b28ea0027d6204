package skill

import (
	"context"
	"fmt"
	"strings"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/dateutil"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/intent"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/neis"
)

// TimetableHandler serves class timetable queries for the configured
// grade and class.
type TimetableHandler struct {
	client *neis.Client
	grade  string
	class  string
}

// NewTimetableHandler creates a timetable handler.
func NewTimetableHandler(client *neis.Client, grade, class string) *TimetableHandler {
	return &TimetableHandler{client: client, grade: grade, class: class}
}

func (h *TimetableHandler) Capability() intent.Capability {
	return intent.CapabilityTimetable
}

func (h *TimetableHandler) Handle(ctx context.Context, res intent.Resolution) (kakao.Response, error) {
	date := res.Range.Start

	lessons, err := h.client.Timetable(ctx, date, h.grade, h.class)
	if err != nil {
		return kakao.Response{}, fmt.Errorf("fetch timetable: %w", err)
	}
	if len(lessons) == 0 {
		text := fmt.Sprintf(noDataMessages[intent.CapabilityTimetable], dateutil.FormatLong(date))
		return kakao.NewSimpleTextResponse(text, quickReplies(intent.CapabilityTimetable)...), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s 시간표 (%s학년 %s반)", dateutil.FormatLong(date), h.grade, h.class)
	for _, lesson := range lessons {
		fmt.Fprintf(&b, "\n%d교시: %s", lesson.Period, lesson.Subject)
		if lesson.Classroom != "" {
			fmt.Fprintf(&b, " (%s)", lesson.Classroom)
		}
	}

	return kakao.NewSimpleTextResponse(b.String(), quickReplies(intent.CapabilityTimetable)...), nil
}
