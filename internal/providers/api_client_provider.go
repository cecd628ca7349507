package providers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"linguactl/internal/structures"
)

const maxResponseBodySize = 1 << 20 // 1 MB

// TokenSource yields the current session token, if any. Implemented by the
// session store; declared here so the client does not depend on it directly.
type TokenSource interface {
	Load() (string, bool)
}

type ApiClientInterface interface {
	Get(ctx context.Context, path string, out interface{}) error
	GetRaw(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, body, out interface{}) error
}

type ApiClientProvider struct {
	baseUrl string
	client  *http.Client
	tokens  TokenSource
	logger  Logger
	metrics MetricsProviderInterface
}

func NewApiClientProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface, tokens TokenSource) ApiClientInterface {
	return &ApiClientProvider{
		baseUrl: conf.Api.BaseUrl,
		client: &http.Client{
			Timeout: conf.Api.Timeout,
		},
		tokens:  tokens,
		logger:  logger,
		metrics: metrics,
	}
}

func (ac *ApiClientProvider) Get(ctx context.Context, path string, out interface{}) error {
	data, err := ac.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return ac.decode(path, data, out)
}

func (ac *ApiClientProvider) GetRaw(ctx context.Context, path string) ([]byte, error) {
	return ac.do(ctx, http.MethodGet, path, nil)
}

func (ac *ApiClientProvider) Post(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &TransientError{Message: "encode request", Err: err}
		}
		reader = bytes.NewReader(encoded)
	}
	data, err := ac.do(ctx, http.MethodPost, path, reader)
	if err != nil {
		return err
	}
	return ac.decode(path, data, out)
}

func (ac *ApiClientProvider) decode(path string, data []byte, out interface{}) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		ac.logger.Errorf(TypeApi, "Malformed response from %s: %s", path, err)
		return &TransientError{Message: "malformed response", Err: err}
	}
	return nil
}

// do runs one request and classifies the outcome. Every error leaving here
// is either ErrUnauthorized, a *ValidationError or a *TransientError; raw
// transport errors never reach the callers.
func (ac *ApiClientProvider) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, ac.baseUrl+path, body)
	if err != nil {
		return nil, &TransientError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := ac.tokens.Load(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := ac.client.Do(req)
	if err != nil {
		ac.metrics.IncApiRequests(path, 0)
		ac.logger.Warnf(TypeApi, "%s %s failed: %s", method, path, err)
		return nil, &TransientError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	ac.metrics.IncApiRequests(path, resp.StatusCode)
	ac.metrics.ObserveApiDuration(path, time.Since(start))
	if err != nil {
		return nil, &TransientError{Message: "read response", Err: err}
	}

	ac.logger.Debugf(TypeApi, "%s %s -> %d (%d bytes)", method, path, resp.StatusCode, len(data))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode < 500:
		return nil, &ValidationError{Message: errorMessage(data, resp.StatusCode)}
	default:
		return nil, &TransientError{Message: errorMessage(data, resp.StatusCode)}
	}
}

// errorMessage extracts the human-readable error field a non-2xx response
// is expected to carry, falling back to the status text.
func errorMessage(data []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return http.StatusText(status)
}
