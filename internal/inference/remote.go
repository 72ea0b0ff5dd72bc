package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// RemoteModel calls a model-serving sidecar over HTTP. Failures are never
// retried; once the sidecar keeps failing the breaker opens and calls fail
// fast until it recovers.
type RemoteModel struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

type remoteRequest struct {
	Instances [][]float64 `json:"instances"`
}

type remoteResponse struct {
	Predictions [][]float64 `json:"predictions"`
	Error       string      `json:"error,omitempty"`
}

// NewRemoteModel creates a client for url (the sidecar's predict endpoint).
func NewRemoteModel(url string, timeout time.Duration, logger *zap.Logger) *RemoteModel {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	log := logger.Sugar()

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "projection-model",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnw("Model circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &RemoteModel{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		breaker: cb,
	}
}

func (m *RemoteModel) Predict(ctx context.Context, x [][]float64) ([][]float64, error) {
	out, err := m.breaker.Execute(func() (interface{}, error) {
		return m.call(ctx, x)
	})
	if err != nil {
		return nil, err
	}
	return out.([][]float64), nil
}

func (m *RemoteModel) call(ctx context.Context, x [][]float64) ([][]float64, error) {
	payload, err := json.Marshal(remoteRequest{Instances: x})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out remoteResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return nil, fmt.Errorf("model returned %d: %s", resp.StatusCode, out.Error)
		}
		return nil, fmt.Errorf("model returned %d", resp.StatusCode)
	}
	return out.Predictions, nil
}
