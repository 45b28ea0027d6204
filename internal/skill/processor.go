package skill

import (
	"context"
	"time"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/config"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/ctxutil"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/intent"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/logger"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/metrics"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/sentry"
)

// Processor resolves skill requests and dispatches them to the
// registered handlers. It is the single error boundary: no handler
// failure ever reaches the chat platform as anything but a fixed
// apology reply.
type Processor struct {
	registry *Registry
	log      *logger.Logger
	metrics  *metrics.Metrics
	timeout  time.Duration
	now      func() time.Time
}

// ProcessorConfig holds the dependencies for a Processor. Logger and
// Metrics may be nil.
type ProcessorConfig struct {
	Registry *Registry
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
	Timeout  time.Duration
}

// NewProcessor creates a processor. A zero timeout falls back to the
// skill processing budget, which leaves headroom inside Kakao's reply
// deadline.
func NewProcessor(cfg ProcessorConfig) *Processor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.SkillProcessing
	}
	return &Processor{
		registry: cfg.Registry,
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Process handles one skill request end to end and always returns a
// well-formed response.
func (p *Processor) Process(ctx context.Context, req *kakao.SkillRequest) kakao.Response {
	res := intent.Resolve(req, p.now())

	ctx = ctxutil.WithCapability(ctx, string(res.Capability))
	if userID := req.UserID(); userID != "" {
		ctx = ctxutil.WithUserID(ctx, userID)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	handler := p.registry.Get(res.Capability)
	if handler == nil {
		return kakao.NewSimpleTextResponse(helpText, quickReplies(intent.CapabilityHelp)...)
	}

	start := p.now()
	resp, err := handler.Handle(ctx, res)
	elapsed := p.now().Sub(start).Seconds()

	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordSkill(string(res.Capability), "error", elapsed)
		}
		if p.log != nil {
			p.log.WithError(err).
				WithField("capability", string(res.Capability)).
				WithField("sub_type", res.SubType).
				Errorf("capability handler failed")
		}
		sentry.CaptureExceptionWithContext(ctx, err)
		return kakao.NewSimpleTextResponse(apology(res.Capability), quickReplies(res.Capability)...)
	}

	if p.metrics != nil {
		p.metrics.RecordSkill(string(res.Capability), "success", elapsed)
	}
	return resp
}
