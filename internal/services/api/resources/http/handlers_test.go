package http_test

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"murmur/internal/core/policy"
	"murmur/internal/platform/config"
	phttp "murmur/internal/platform/net/http"
	resourceshttp "murmur/internal/services/api/resources/http"
)

func TestCrisis_ServesPackPayload(t *testing.T) {
	pack, err := policy.Load()
	if err != nil {
		t.Fatalf("policy.Load(): %v", err)
	}

	srv := phttp.NewServer(config.New())
	r := srv.Router()
	r.Route("/resources", func(rr phttp.Router) {
		resourceshttp.Register(rr, pack)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/resources/crisis", nil)
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %#v", env.Data)
	}
	list, ok := data["resources"].([]any)
	if !ok || len(list) != len(pack.CrisisResources) {
		t.Fatalf("expected %d resources, got %#v", len(pack.CrisisResources), data["resources"])
	}
	first, ok := list[0].(map[string]any)
	if !ok || first["name"] == "" {
		t.Fatalf("resource entries must carry names: %#v", list[0])
	}
}
