package skill

import (
	"context"
	"fmt"
	"time"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/dataset"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/dateutil"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/intent"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
)

// DdayHandler serves D-day queries: the single nearest upcoming event
// from the static D-day list.
type DdayHandler struct {
	store *dataset.Store
	now   func() time.Time
}

// NewDdayHandler creates a D-day handler.
func NewDdayHandler(store *dataset.Store) *DdayHandler {
	return &DdayHandler{store: store, now: time.Now}
}

func (h *DdayHandler) Capability() intent.Capability {
	return intent.CapabilityDday
}

func (h *DdayHandler) Handle(ctx context.Context, res intent.Resolution) (kakao.Response, error) {
	countdown, ok := h.store.NearestDday(h.now())
	if !ok {
		return kakao.NewSimpleTextResponse(
			noDataMessages[intent.CapabilityDday],
			quickReplies(intent.CapabilityDday)...), nil
	}

	text := fmt.Sprintf("%s\n%s (%s)", countdown.Label(), countdown.Title, dateutil.FormatLong(countdown.Date))
	return kakao.NewSimpleTextResponse(text, quickReplies(intent.CapabilityDday)...), nil
}
