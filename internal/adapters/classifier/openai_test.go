package classifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"murmur/internal/platform/metrics"
)

func TestClassify_NoKeyIsUnavailable(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(metrics.Default.ClassifierSkipped)

	c := NewOpenAI(Options{})
	if _, ok := c.Classify(context.Background(), "anything"); ok {
		t.Fatalf("keyless client must report no signal")
	}

	if got := testutil.ToFloat64(metrics.Default.ClassifierSkipped); got != before+1 {
		t.Fatalf("classifier_skipped_total = %v, want %v", got, before+1)
	}
}

func TestClassify_Flagged(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/moderations" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"flagged":true,` +
			`"categories":{"violence":true},` +
			`"category_scores":{"violence":0.97,"harassment":0.21}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "test-key"})
	res, ok := c.Classify(context.Background(), "some text")
	if !ok {
		t.Fatalf("expected signal")
	}
	if !res.Flagged {
		t.Fatalf("expected flagged")
	}
	if res.Category != "violence" {
		t.Fatalf("category = %q, want violence", res.Category)
	}
}

func TestClassify_CleanNotFlagged(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"flagged":false,"categories":{},"category_scores":{}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k"})
	res, ok := c.Classify(context.Background(), "hello")
	if !ok || res.Flagged {
		t.Fatalf("got %+v ok=%v", res, ok)
	}
}

func TestClassify_ServerErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k"})
	if _, ok := c.Classify(context.Background(), "x"); ok {
		t.Fatalf("500 must report no signal")
	}
}

func TestClassify_BadPayloadIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k"})
	if _, ok := c.Classify(context.Background(), "x"); ok {
		t.Fatalf("bad payload must report no signal")
	}
}

func TestClassify_EmptyResultsIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k"})
	if _, ok := c.Classify(context.Background(), "x"); ok {
		t.Fatalf("empty results must report no signal")
	}
}

func TestClassify_TimeoutIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k", Timeout: 20 * time.Millisecond})
	if _, ok := c.Classify(context.Background(), "x"); ok {
		t.Fatalf("timeout must report no signal")
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	s := Static{Res: Result{Flagged: true, Category: "hate"}, OK: true}
	res, ok := s.Classify(context.Background(), "x")
	if !ok || !res.Flagged || res.Category != "hate" {
		t.Fatalf("got %+v ok=%v", res, ok)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := s.Classify(ctx, "x"); ok {
		t.Fatalf("canceled context must report no signal")
	}
}
