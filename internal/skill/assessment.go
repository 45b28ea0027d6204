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
)

// maxAssessmentItems caps the reply length for long assessment lists.
const maxAssessmentItems = 10

// AssessmentHandler serves performance assessment queries from the
// static dataset.
type AssessmentHandler struct {
	store *dataset.Store
	now   func() time.Time
}

// NewAssessmentHandler creates an assessment handler.
func NewAssessmentHandler(store *dataset.Store) *AssessmentHandler {
	return &AssessmentHandler{store: store, now: time.Now}
}

func (h *AssessmentHandler) Capability() intent.Capability {
	return intent.CapabilityAssessment
}

func (h *AssessmentHandler) Handle(ctx context.Context, res intent.Resolution) (kakao.Response, error) {
	today := h.now()
	upcoming := h.store.UpcomingAssessments(today)

	// Hand-maintained overrides cover assessments the main file misses.
	custom := h.store.CustomAssessmentsBetween(today, today.AddDate(1, 0, 0))

	if len(upcoming)+len(custom) == 0 {
		return kakao.NewSimpleTextResponse(
			noDataMessages[intent.CapabilityAssessment],
			quickReplies(intent.CapabilityAssessment)...), nil
	}

	lines := make([]string, 0, len(upcoming)+len(custom))
	for _, a := range upcoming {
		line := fmt.Sprintf("• %s (%s)", a.Title, a.DisplayDate())
		if a.Subject != "" && a.Subject != a.Title {
			line += " [" + a.Subject + "]"
		}
		if a.Description != "" {
			line += " - " + a.Description
		}
		lines = append(lines, line)
	}
	for _, a := range custom {
		line := fmt.Sprintf("• %s (%s)", a.Title, dateutil.FormatShort(a.Date))
		if a.Description != "" {
			line += " - " + a.Description
		}
		lines = append(lines, line)
	}

	truncated := false
	if len(lines) > maxAssessmentItems {
		lines = lines[:maxAssessmentItems]
		truncated = true
	}

	var b strings.Builder
	b.WriteString("다가오는 수행평가 일정입니다.")
	for _, line := range lines {
		b.WriteString("\n" + line)
	}
	if truncated {
		b.WriteString("\n…이후 일정은 가까워지면 알려드릴게요.")
	}

	return kakao.NewSimpleTextResponse(b.String(), quickReplies(intent.CapabilityAssessment)...), nil
}
