package skill

import (
	"context"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/intent"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
)

// HelpHandler serves the usage guide. It is also the default target
// for anything the resolver could not place.
type HelpHandler struct{}

// NewHelpHandler creates a help handler.
func NewHelpHandler() *HelpHandler {
	return &HelpHandler{}
}

func (h *HelpHandler) Capability() intent.Capability {
	return intent.CapabilityHelp
}

func (h *HelpHandler) Handle(ctx context.Context, res intent.Resolution) (kakao.Response, error) {
	return kakao.NewSimpleTextResponse(helpText, quickReplies(intent.CapabilityHelp)...), nil
}
