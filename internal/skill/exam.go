package skill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/dataset"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/dateutil"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/intent"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/neis"
)

// examKeywords mark academic calendar events that count as exams.
var examKeywords = []string{"시험", "고사"}

// ExamHandler serves exam schedule queries. It merges exam-flagged
// academic calendar events with the hand-maintained exam list and adds
// a countdown to the nearest upcoming exam.
type ExamHandler struct {
	client *neis.Client
	store  *dataset.Store
	now    func() time.Time
}

// NewExamHandler creates an exam handler.
func NewExamHandler(client *neis.Client, store *dataset.Store) *ExamHandler {
	return &ExamHandler{client: client, store: store, now: time.Now}
}

func (h *ExamHandler) Capability() intent.Capability {
	return intent.CapabilityExam
}

func (h *ExamHandler) Handle(ctx context.Context, res intent.Resolution) (kakao.Response, error) {
	events, err := h.client.Schedule(ctx, res.Range.Start, res.Range.End)
	if err != nil {
		return kakao.Response{}, fmt.Errorf("fetch exam schedule: %w", err)
	}

	items := make([]string, 0, 8)
	seen := make(map[string]bool)
	for _, ev := range events {
		if !matchesAny(ev.Title, examKeywords) {
			continue
		}
		key := ev.Title + "|" + dateutil.FormatISO(ev.Date)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, fmt.Sprintf("• %s (%s)", ev.Title, dateutil.FormatShort(ev.Date)))
	}

	for _, exam := range h.store.CustomExamsBetween(res.Range.Start, res.Range.End) {
		line := fmt.Sprintf("• %s (%s)", exam.Title, dateutil.FormatRange(exam.Start, exam.End))
		if exam.Description != "" {
			line += " - " + exam.Description
		}
		items = append(items, line)
	}

	countdown, hasCountdown := h.store.NearestExam(h.now())

	rangeText := dateutil.FormatRange(res.Range.Start, res.Range.End)
	if len(items) == 0 && !hasCountdown {
		text := fmt.Sprintf(noDataMessages[intent.CapabilityExam], rangeText)
		return kakao.NewSimpleTextResponse(text, quickReplies(intent.CapabilityExam)...), nil
	}

	var b strings.Builder
	if len(items) > 0 {
		b.WriteString(rangeText + " 시험 일정\n")
		b.WriteString(strings.Join(items, "\n"))
	}
	if hasCountdown {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "다음 시험: %s (%s) %s",
			countdown.Title, dateutil.FormatShort(countdown.Date), countdown.Label())
	}

	return kakao.NewSimpleTextResponse(b.String(), quickReplies(intent.CapabilityExam)...), nil
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
