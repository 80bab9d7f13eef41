package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Predictor is an external model that labels posting text, e.g. a
// fine-tuned transformer served over HTTP.
type Predictor interface {
	Predict(ctx context.Context, text string) (label string, confidence float64, err error)
}

// RemotePredictor calls an inference endpoint that accepts {"text": ...}
// and answers {"label": ..., "confidence": ...}.
type RemotePredictor struct {
	URL string
	hc  *http.Client
}

func NewRemotePredictor(url string, timeout time.Duration) *RemotePredictor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemotePredictor{URL: url, hc: &http.Client{Timeout: timeout}}
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (p *RemotePredictor) Predict(ctx context.Context, text string) (string, float64, error) {
	body, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return "", 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("predictor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.hc.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("predictor call: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return "", 0, fmt.Errorf("predictor status %s: %q", res.Status, string(b))
	}

	var out predictResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", 0, fmt.Errorf("predictor decode: %w", err)
	}
	return out.Label, out.Confidence, nil
}
