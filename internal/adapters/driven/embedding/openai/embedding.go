// Package openai embeds animal descriptions and adopter queries through the
// OpenAI /embeddings endpoint or any server speaking the same protocol,
// such as text-embeddings-inference serving all-MiniLM-L6-v2.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
)

var _ driven.EmbeddingService = (*EmbeddingService)(nil)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "text-embedding-3-small"
	DefaultTimeout = 60 * time.Second

	// maxBatch is the input limit of a single /embeddings call.
	maxBatch = 2048

	// blankInput replaces empty or whitespace-only texts, which the API
	// rejects with a 400.
	blankInput = " "

	// fallbackDimensions is used for models missing from knownDimensions.
	fallbackDimensions = 1536

	// maxErrorBody caps how much of a failed response ends up in an error.
	maxErrorBody = 512
)

// knownDimensions maps model names to their native vector size.
var knownDimensions = map[string]int{
	"text-embedding-3-small":                 1536,
	"text-embedding-3-large":                 3072,
	"text-embedding-ada-002":                 1536,
	"all-MiniLM-L6-v2":                       384,
	"sentence-transformers/all-MiniLM-L6-v2": 384,
}

// Config configures an EmbeddingService. Only APIKey is required.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// Dimensions shortens text-embedding-3 vectors. Zero keeps the model's
	// native size.
	Dimensions int
}

// EmbeddingService is a driven.EmbeddingService backed by /embeddings.
type EmbeddingService struct {
	client     *http.Client
	endpoint   string
	apiKey     string
	model      string
	dimensions int
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewEmbeddingService validates cfg and fills in defaults.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai: API key is required")
	}

	model := orDefault(cfg.Model, DefaultModel)
	dims := cfg.Dimensions
	if dims <= 0 {
		dims = fallbackDimensions
		if n, ok := knownDimensions[model]; ok {
			dims = n
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &EmbeddingService{
		client:     &http.Client{Timeout: timeout},
		endpoint:   strings.TrimRight(orDefault(cfg.BaseURL, DefaultBaseURL), "/"),
		apiKey:     cfg.APIKey,
		model:      model,
		dimensions: dims,
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Embed returns the vector for a single text. A blank text is embedded as
// a single space.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch returns one vector per text, in input order, splitting the
// work into calls of at most maxBatch inputs.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for lo := 0; lo < len(texts); lo += maxBatch {
		hi := min(lo+maxBatch, len(texts))
		vecs, err := s.embed(ctx, sanitize(texts[lo:hi]))
		if err != nil {
			return nil, err
		}
		out = append(out, vecs...)
	}
	return out, nil
}

// sanitize returns texts with every blank entry replaced by blankInput.
// The input slice is not modified.
func sanitize(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			t = blankInput
		}
		out[i] = t
	}
	return out
}

// supportsDimensions reports whether the model accepts the dimensions
// request field.
func (s *EmbeddingService) supportsDimensions() bool {
	return strings.HasPrefix(s.model, "text-embedding-3-")
}

func (s *EmbeddingService) embed(ctx context.Context, inputs []string) ([][]float32, error) {
	payload := embeddingRequest{Model: s.model, Input: inputs}
	if s.supportsDimensions() {
		payload.Dimensions = s.dimensions
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}

	raw, status, err := s.do(ctx, http.MethodPost, "/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if status != http.StatusOK {
			return nil, statusError(status, raw)
		}
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if status != http.StatusOK {
		return nil, statusError(status, raw)
	}

	vecs := make([][]float32, len(inputs))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(vecs) {
			return nil, fmt.Errorf("openai: embedding index %d out of range", d.Index)
		}
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vecs[d.Index] = vec
	}
	for i := range vecs {
		if vecs[i] == nil {
			return nil, fmt.Errorf("openai: no embedding returned for input %d", i)
		}
	}
	return vecs, nil
}

// do sends an authenticated request and returns the response body and status.
func (s *EmbeddingService) do(ctx context.Context, method, path string, body io.Reader) ([]byte, int, error) {
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, s.endpoint+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("openai: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("openai: read response: %w", err)
	}
	return raw, resp.StatusCode, nil
}

func statusError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return fmt.Errorf("openai: status %d: %s", status, msg)
}

// Dimensions returns the vector size.
func (s *EmbeddingService) Dimensions() int { return s.dimensions }

// ModelName returns the configured model.
func (s *EmbeddingService) ModelName() string { return s.model }

// Ping lists models to check reachability and the API key without
// running inference.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	raw, status, err := s.do(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return statusError(status, raw)
	}
	return nil
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (s *EmbeddingService) Close() error { return nil }
