package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const retryBackoffBase = 500 * time.Millisecond

// SendJSON sends a JSON request to a full URL with optional headers and
// returns the raw response body. It does not assume any provider; callers
// decide the URL and headers. Transport errors, 429 and 5xx responses are
// retried up to maxRetries times with exponential backoff, honoring a
// Retry-After header when the server sends one.
func SendJSON(ctx context.Context, client *http.Client, url string, body any, headers map[string]string, maxRetries int, logger *slog.Logger) ([]byte, int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: 45 * time.Second}
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	reqID := uuid.New().String()
	start := time.Now()

	bs, err := json.Marshal(body)
	if err != nil {
		logger.Error("llm.http.encode_error", "req_id", reqID, "error", err)
		return nil, 0, fmt.Errorf("encode json: %w", err)
	}

	logger.Info("llm.http.request",
		"req_id", reqID,
		"url", url,
		"content_length", len(bs),
	)

	var raw []byte
	var status, retryAfter int
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoff(attempt, retryAfter)
			logger.Warn("llm.http.retry",
				"req_id", reqID,
				"attempt", attempt,
				"wait_ms", wait.Milliseconds(),
				"last_status", status,
			)
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(wait):
			}
		}

		raw, status, retryAfter, lastErr = doOnce(ctx, client, url, bs, headers)
		if lastErr == nil && status/100 == 2 {
			logger.Info("llm.http.response",
				"req_id", reqID,
				"status", status,
				"bytes", len(raw),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return raw, status, nil
		}
		if !retryable(status, lastErr) {
			break
		}
	}

	logger.Error("llm.http.failed",
		"req_id", reqID,
		"status", status,
		"error", lastErr,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if lastErr != nil {
		return raw, status, lastErr
	}
	return raw, status, fmt.Errorf("non-2xx status: %d", status)
}

func doOnce(ctx context.Context, client *http.Client, url string, body []byte, headers map[string]string) ([]byte, int, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	return raw, resp.StatusCode, parseRetryAfter(resp.Header.Get("Retry-After")), nil
}

func retryable(status int, err error) bool {
	if err != nil {
		return true
	}
	return status == http.StatusTooManyRequests || status/100 == 5
}

func backoff(attempt, retryAfterSecs int) time.Duration {
	if retryAfterSecs > 0 {
		return time.Duration(retryAfterSecs) * time.Second
	}
	return retryBackoffBase << (attempt - 1)
}

// parseRetryAfter parses a Retry-After header value into seconds. Both forms
// the header allows are accepted: delta-seconds and an HTTP-date. Returns 0
// for anything else, or for dates already in the past.
func parseRetryAfter(val string) int {
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return secs
	}
	if at, err := http.ParseTime(val); err == nil {
		if secs := int(time.Until(at).Seconds()); secs > 0 {
			return secs
		}
	}
	return 0
}
