// Package neis fetches school open data from the NEIS hub API and
// normalizes the rows into domain records. All fetches go through one
// read-through TTL cache and a singleflight group so identical
// concurrent requests hit the upstream at most once.
package neis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/config"
	domerrors "github.com/yunseo-dev/neis-kakaobot-go/internal/errors"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/logger"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/metrics"
)

// NEIS endpoint names.
const (
	EndpointMeal     = "mealServiceDietInfo"
	EndpointSchedule = "SchoolSchedule"
)

// Result codes from the NEIS envelope head. INFO-200 means the query
// matched no rows and is not an error.
const (
	resultCodeOK    = "INFO-000"
	resultCodeEmpty = "INFO-200"
)

// Row is one flat record from a NEIS dataset. All NEIS fields are
// string-typed on the wire.
type Row map[string]string

// Options configures a Client. Logger and Metrics may be nil.
type Options struct {
	BaseURL           string
	APIKey            string
	OfficeCode        string
	SchoolCode        string
	TimetableEndpoint string
	MaxRetries        int
	RetryInitialDelay time.Duration
	CacheTTL          time.Duration
	HTTPClient        *http.Client
	Logger            *logger.Logger
	Metrics           *metrics.Metrics
}

// Client is an HTTP client for the NEIS hub API.
type Client struct {
	httpClient        *http.Client
	baseURL           string
	apiKey            string
	officeCode        string
	schoolCode        string
	timetableEndpoint string
	maxRetries        int
	retryInitialDelay time.Duration
	cache             *Cache
	group             singleflight.Group
	log               *logger.Logger
	metrics           *metrics.Metrics
}

// New creates a NEIS client. Zero-valued options fall back to
// sensible defaults.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://open.neis.go.kr/hub"
	}
	if opts.TimetableEndpoint == "" {
		opts.TimetableEndpoint = "hisTimetable"
	}
	if opts.RetryInitialDelay <= 0 {
		opts.RetryInitialDelay = config.NeisRetryInitial
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: config.NeisRequest,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		httpClient:        opts.HTTPClient,
		baseURL:           strings.TrimRight(opts.BaseURL, "/"),
		apiKey:            opts.APIKey,
		officeCode:        opts.OfficeCode,
		schoolCode:        opts.SchoolCode,
		timetableEndpoint: opts.TimetableEndpoint,
		maxRetries:        opts.MaxRetries,
		retryInitialDelay: opts.RetryInitialDelay,
		cache:             NewCache(opts.CacheTTL),
		log:               opts.Logger,
		metrics:           opts.Metrics,
	}
}

// Cache exposes the client's cache for background sweeping.
func (c *Client) Cache() *Cache {
	return c.cache
}

// fetch performs one cached, deduplicated GET against a NEIS endpoint.
// The shared KEY, Type, pIndex, pSize parameters are filled in unless
// the caller overrides them.
func (c *Client) fetch(ctx context.Context, endpoint string, params map[string]string) ([]Row, error) {
	query := url.Values{}
	query.Set("KEY", c.apiKey)
	query.Set("Type", "json")
	query.Set("pIndex", "1")
	query.Set("pSize", "100")
	query.Set("ATPT_OFCDC_SC_CODE", c.officeCode)
	query.Set("SD_SCHUL_CODE", c.schoolCode)
	for k, v := range params {
		if v != "" {
			query.Set(k, v)
		}
	}

	key := cacheKey(endpoint, query)
	if rows, ok := c.cache.Get(key); ok {
		if c.metrics != nil {
			c.metrics.RecordCacheHit(endpoint)
		}
		return rows, nil
	}
	if c.metrics != nil {
		c.metrics.RecordCacheMiss(endpoint)
	}

	result, err, shared := c.group.Do(key, func() (any, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		start := time.Now()
		rows, err := c.request(ctx, endpoint, query)
		if c.metrics != nil {
			status := "success"
			switch {
			case domerrors.Is(err, domerrors.ErrTimeout):
				status = "timeout"
			case err != nil:
				status = "error"
			}
			c.metrics.RecordFetch(endpoint, status, time.Since(start).Seconds())
		}
		if err != nil {
			return nil, err
		}

		c.cache.Set(key, rows)
		return rows, nil
	})
	if shared && c.metrics != nil {
		c.metrics.RecordSingleflightDedup(endpoint)
	}
	if err != nil {
		if c.log != nil {
			c.log.WithError(err).WithField("endpoint", endpoint).Errorf("neis fetch failed")
		}
		return nil, err
	}

	return result.([]Row), nil
}

// request performs the HTTP round trip with bounded retries. Only rate
// limiting and transient server errors are retried.
func (c *Client) request(ctx context.Context, endpoint string, query url.Values) ([]Row, error) {
	reqURL := c.baseURL + "/" + endpoint + "?" + query.Encode()

	var rows []Row
	err := RetryWithBackoff(ctx, c.maxRetries, c.retryInitialDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return permanent(domerrors.NewFetchError(endpoint, 0, err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// A timed-out call surfaces immediately, never retried.
			var netErr net.Error
			if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
				return permanent(domerrors.NewFetchError(endpoint, 0, domerrors.ErrTimeout))
			}
			return domerrors.NewFetchError(endpoint, 0, err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			fetchErr := domerrors.NewFetchError(endpoint, resp.StatusCode,
				fmt.Errorf("unexpected status %d", resp.StatusCode))
			switch resp.StatusCode {
			case http.StatusTooManyRequests,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				return fetchErr
			default:
				return permanent(fetchErr)
			}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return domerrors.NewFetchError(endpoint, resp.StatusCode, err)
		}

		rows, err = parseEnvelope(endpoint, body)
		if err != nil {
			return permanent(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type resultInfo struct {
	Code    string `json:"CODE"`
	Message string `json:"MESSAGE"`
}

type envelopeHead struct {
	Result *resultInfo `json:"RESULT"`
}

type envelopeItem struct {
	Head []envelopeHead `json:"head"`
	Row  []Row          `json:"row"`
}

// parseEnvelope unpacks the NEIS response body. The dataset sits under
// a key named after the endpoint as a two-element array of head and
// row objects; API-level failures put RESULT at the top level instead.
func parseEnvelope(endpoint string, body []byte) ([]Row, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domerrors.ErrMalformedData, endpoint, err)
	}

	if raw, ok := payload["RESULT"]; ok {
		var result resultInfo
		if err := json.Unmarshal(raw, &result); err == nil && result.Code != "" {
			if result.Code == resultCodeEmpty {
				return []Row{}, nil
			}
			return nil, domerrors.NewResultCodeError(endpoint, result.Code, result.Message)
		}
	}

	dataset, ok := payload[endpoint]
	if !ok {
		return []Row{}, nil
	}

	var items []envelopeItem
	if err := json.Unmarshal(dataset, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domerrors.ErrMalformedData, endpoint, err)
	}

	rows := []Row{}
	code := resultCodeOK
	message := ""
	for _, item := range items {
		for _, head := range item.Head {
			if head.Result != nil {
				code = head.Result.Code
				message = head.Result.Message
			}
		}
		if item.Row != nil {
			rows = item.Row
		}
	}

	switch code {
	case resultCodeOK:
		return rows, nil
	case resultCodeEmpty:
		return []Row{}, nil
	default:
		return nil, domerrors.NewResultCodeError(endpoint, code, message)
	}
}

// cacheKey builds a deterministic key from the endpoint and the sorted
// query parameters.
func cacheKey(endpoint string, query url.Values) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(endpoint)
	for _, k := range keys {
		b.WriteByte(':')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(query.Get(k))
	}
	return b.String()
}
