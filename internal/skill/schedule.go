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

// ScheduleHandler serves academic calendar queries.
type ScheduleHandler struct {
	client *neis.Client
}

// NewScheduleHandler creates a schedule handler.
func NewScheduleHandler(client *neis.Client) *ScheduleHandler {
	return &ScheduleHandler{client: client}
}

func (h *ScheduleHandler) Capability() intent.Capability {
	return intent.CapabilitySchedule
}

func (h *ScheduleHandler) Handle(ctx context.Context, res intent.Resolution) (kakao.Response, error) {
	events, err := h.client.Schedule(ctx, res.Range.Start, res.Range.End)
	if err != nil {
		return kakao.Response{}, fmt.Errorf("fetch schedule: %w", err)
	}

	rangeText := dateutil.FormatRange(res.Range.Start, res.Range.End)
	if len(events) == 0 {
		text := fmt.Sprintf(noDataMessages[intent.CapabilitySchedule], rangeText)
		return kakao.NewSimpleTextResponse(text, quickReplies(intent.CapabilitySchedule)...), nil
	}

	var b strings.Builder
	b.WriteString(rangeText + " 학사 일정")
	if res.Range.SingleDay() {
		titles := make([]string, len(events))
		for i, ev := range events {
			titles[i] = ev.Title
		}
		b.WriteString("\n• " + strings.Join(titles, ", "))
	} else {
		// Group events by day, comma-joining each day's titles.
		var day string
		var titles []string
		flush := func() {
			if day != "" {
				b.WriteString("\n• " + day + ": " + strings.Join(titles, ", "))
			}
		}
		for _, ev := range events {
			d := dateutil.FormatShort(ev.Date)
			if d != day {
				flush()
				day = d
				titles = titles[:0]
			}
			titles = append(titles, ev.Title)
		}
		flush()
	}

	return kakao.NewSimpleTextResponse(b.String(), quickReplies(intent.CapabilitySchedule)...), nil
}
