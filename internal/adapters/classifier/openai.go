package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"murmur/internal/platform/logger"
	"murmur/internal/platform/metrics"
)

const (
	baseURLDefault = "https://api.openai.com"
	defaultTimeout = 5 * time.Second
	defaultModel   = "omni-moderation-latest"
)

// Options configures the OpenAI moderation client
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAI calls the moderations endpoint.
// An empty APIKey puts the client in unavailable mode permanently
type OpenAI struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewOpenAI creates the client with sane defaults
func NewOpenAI(o Options) *OpenAI {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &OpenAI{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("classifier"),
	}
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged        bool               `json:"flagged"`
		Categories     map[string]bool    `json:"categories"`
		CategoryScores map[string]float64 `json:"category_scores"`
	} `json:"results"`
}

// Classify sends text to the moderations endpoint.
// Every failure path returns ok=false so the pipeline degrades to lexical-only
func (c *OpenAI) Classify(ctx context.Context, text string) (Result, bool) {
	if c.opts.APIKey == "" {
		metrics.Default.ClassifierSkipped.Inc()
		return Result{}, false
	}

	body, err := json.Marshal(moderationRequest{Model: c.opts.Model, Input: text})
	if err != nil {
		return Result{}, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/v1/moderations", bytes.NewReader(body))
	if err != nil {
		return Result{}, false
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("moderation call failed")
		return Result{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("moderation call non-200")
		io.Copy(io.Discard, resp.Body)
		return Result{}, false
	}

	var mr moderationResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		c.log.Warn().Err(err).Msg("moderation payload decode failed")
		return Result{}, false
	}
	if len(mr.Results) == 0 {
		return Result{}, false
	}

	first := mr.Results[0]
	return Result{Flagged: first.Flagged, Category: topCategory(first.CategoryScores)}, true
}

// topCategory returns the highest scoring category name, ties break lexically
func topCategory(scores map[string]float64) string {
	best := ""
	bestScore := -1.0
	for name, score := range scores {
		if score > bestScore || (score == bestScore && name < best) {
			best = name
			bestScore = score
		}
	}
	return best
}
