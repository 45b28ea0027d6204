// Centralized timeout constants.
//
// The Kakao skill server must answer within 5 seconds or the open builder
// shows a timeout message, so every timeout here is derived from that
// budget: one upstream call plus formatting has to fit inside it.
package config

import "time"

// Webhook timeouts
const (
	// SkillProcessing is the timeout for handling a single skill request,
	// including the NEIS fetch and reply formatting. Kakao open builder
	// gives skills 5 seconds end to end.
	SkillProcessing = 4500 * time.Millisecond

	// WebhookHTTPRead is the HTTP server read timeout for webhook requests.
	// Skill payloads are small JSON bodies.
	WebhookHTTPRead = 5 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout.
	// Accommodates SkillProcessing plus response serialization.
	WebhookHTTPWrite = 6 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	WebhookHTTPIdle = 120 * time.Second
)

// NEIS fetch timeouts
const (
	// NeisRequest is the timeout for a single HTTP request to the NEIS API.
	// The hub usually answers in well under a second; 3s leaves room for a
	// retry within the skill budget.
	NeisRequest = 3 * time.Second

	// NeisRetryInitial is the initial delay before retrying a failed request.
	// Uses exponential backoff: 200ms -> 400ms.
	NeisRetryInitial = 200 * time.Millisecond
)

// Background job intervals
const (
	// CacheSweepInterval is how often expired NEIS cache entries are purged.
	CacheSweepInterval = 5 * time.Minute
)
