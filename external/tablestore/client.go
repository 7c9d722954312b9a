package tablestore

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/mirchoi/classcup/internal/platform/resilience"
	"github.com/mirchoi/classcup/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

var errTableStoreTransient = crerr.New("table store transient failure")

// ClientConfig configures the hosted table-store REST client. The store
// exposes one endpoint per table under /rest/v1 and authenticates every
// request with an API key.
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *slog.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	apiKey         string
	timeout        time.Duration
	maxRetries     int
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// getJSON issues a table read through the singleflight group so concurrent
// snapshot loads of one table hit the store once.
func (c *Client) getJSON(ctx context.Context, table, query string, target any) error {
	fullURL := c.buildURL(table, query)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		return c.do(ctx, fasthttp.MethodGet, fullURL, nil, "")
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode table store payload: %w", err)
	}
	return nil
}

func (c *Client) writeJSON(ctx context.Context, method, table, query string, payload any, prefer string, target any) error {
	var body []byte
	if payload != nil {
		encoded, err := sonic.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal table store payload: %w", err)
		}
		body = encoded
	}

	raw, err := c.do(ctx, method, c.buildURL(table, query), body, prefer)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode table store payload: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, fullURL string, body []byte, prefer string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "table store circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: table store is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := c.execute(ctx, method, fullURL, body, prefer)
	if c.circuitEnabled {
		if err != nil && stderrors.Is(err, errTableStoreTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return raw, err
}

func (c *Client) execute(ctx context.Context, method, fullURL string, body []byte, prefer string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := c.roundTrip(method, fullURL, body, prefer)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !stderrors.Is(err, errTableStoreTransient) || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "table store request failed", "method", method, "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) roundTrip(method, fullURL string, body []byte, prefer string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.apiKey)
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
	if len(body) > 0 {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errTableStoreTransient, err)
	}

	status := resp.StatusCode()
	raw := append([]byte(nil), resp.Body()...)
	if status >= 200 && status < 300 {
		return raw, nil
	}
	if isRetryableStatus(status) {
		return nil, fmt.Errorf("%w: store status=%d body=%s", errTableStoreTransient, status, abbreviateBody(raw))
	}
	return nil, fmt.Errorf("store status=%d body=%s", status, abbreviateBody(raw))
}

func (c *Client) buildURL(table, query string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString("/rest/v1/")
	_, _ = buf.WriteString(table)
	if query != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(query)
	}
	return buf.String()
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 512
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "...(truncated)"
}
