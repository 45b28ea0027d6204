// Package webhook receives Kakao skill callbacks, verifies their
// signatures, and dispatches them to the skill processor. The chat
// platform always gets HTTP 200 with a well-formed reply; only a bad
// signature is rejected outright.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/ctxutil"
	domerrors "github.com/yunseo-dev/neis-kakaobot-go/internal/errors"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/logger"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/metrics"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/ratelimit"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/skill"
)

// SignatureHeader carries the HMAC of the raw request body.
const SignatureHeader = "X-Kakao-Signature"

const (
	invalidSignatureMessage = "서명 검증에 실패했습니다."
	badRequestMessage       = "요청을 처리하지 못했습니다. 잠시 후 다시 시도해주세요."
	rateLimitedMessage      = "요청이 너무 잦아요. 잠시 후 다시 시도해주세요."
)

// Handler handles Kakao skill webhook requests.
type Handler struct {
	secret    string
	processor *skill.Processor
	limiter   *ratelimit.PerUser
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// HandlerConfig holds the dependencies for a Handler. An empty Secret
// disables signature verification; a nil Limiter disables per-user
// throttling.
type HandlerConfig struct {
	Secret    string
	Processor *skill.Processor
	Limiter   *ratelimit.PerUser
	Logger    *logger.Logger
	Metrics   *metrics.Metrics
}

// NewHandler creates a webhook handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		secret:    cfg.Secret,
		processor: cfg.Processor,
		limiter:   cfg.Limiter,
		log:       cfg.Logger,
		metrics:   cfg.Metrics,
	}
}

// Handle is the Gin handler for POST /kakao.
func (h *Handler) Handle(c *gin.Context) {
	requestID := uuid.NewString()
	ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
	log := h.log.WithRequestID(requestID)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.WithError(err).Warn("failed to read webhook body")
		h.recordError("read_body")
		c.JSON(http.StatusOK, kakao.NewErrorResponse(badRequestMessage))
		return
	}

	if !h.verifySignature(body, c.GetHeader(SignatureHeader)) {
		log.WithError(domerrors.ErrInvalidSignature).Warn("webhook rejected")
		h.recordError("invalid_signature")
		c.JSON(http.StatusUnauthorized, kakao.NewErrorResponse(invalidSignatureMessage))
		return
	}

	// A body we cannot parse degrades to an empty request, which the
	// resolver answers with the help reply.
	var req kakao.SkillRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.WithError(err).Warn("malformed webhook body")
		h.recordError("bad_body")
		req = kakao.SkillRequest{}
	}

	if h.limiter != nil && !h.limiter.Allow(req.UserID()) {
		log.WithField("user_id", req.UserID()).Debug("user rate limited")
		c.JSON(http.StatusOK, kakao.NewErrorResponse(rateLimitedMessage))
		return
	}

	resp := h.processor.Process(ctx, &req)
	c.JSON(http.StatusOK, resp)
}

// verifySignature checks the HMAC-SHA256 of the raw body, base64
// encoded, against the signature header. With no secret configured
// every request passes.
func (h *Handler) verifySignature(body []byte, signature string) bool {
	if h.secret == "" {
		return true
	}
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (h *Handler) recordError(errorType string) {
	if h.metrics != nil {
		h.metrics.RecordHTTPError(errorType)
	}
}
