package rank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteEmbedder posts {"texts": [...]} and expects {"embeddings": [[...], ...]}.
type RemoteEmbedder struct {
	URL string
	hc  *http.Client
}

func NewRemoteEmbedder(url string, timeout time.Duration) *RemoteEmbedder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteEmbedder{URL: url, hc: &http.Client{Timeout: timeout}}
}

type embedRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (e *RemoteEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(embedRequest{Texts: texts})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("embedder request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := e.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedder call: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return nil, fmt.Errorf("embedder status %s: %q", res.Status, string(b))
	}

	var out embedResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("embedder decode: %w", err)
	}
	return out.Embeddings, nil
}
