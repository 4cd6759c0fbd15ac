package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"wareneingang/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestGetMaterialsScrollAllWithRetry(t *testing.T) {
	attempt := 0

	cfg, _ := config.Load()
	cfg.ERPAPIToken = "test"
	cfg.ERPAPIBaseURL = "https://example.test/api/v1"
	cfg.ERPRateLimitRPS = 1000

	client := NewClient(cfg)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path != "/api/v1/material/scroll" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			attempt++
			if attempt == 1 {
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Body:       io.NopCloser(strings.NewReader(`{"error":"boom"}`)),
					Header:     make(http.Header),
				}, nil
			}

			payload := map[string]any{"success": true, "data": map[string]any{"materials": []map[string]any{}, "scrollId": nil}}
			if attempt == 2 {
				payload = map[string]any{"success": true, "data": map[string]any{"materials": []map[string]any{{"id": 1, "name": "Kabel NYM-J 3x1,5", "articleNumber": "NYM-315", "unit": "meter", "price": 0.89, "stock": 250}}, "scrollId": "abc"}}
			}
			if attempt == 3 {
				payload = map[string]any{"success": true, "data": map[string]any{"materials": []map[string]any{{"id": 2, "name": "Schraube 4x60", "unit": "piece"}}, "scrollId": nil}}
			}
			blob, _ := json.Marshal(payload)
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(string(blob))),
				Header:     make(http.Header),
			}, nil
		}),
	}

	materials, err := client.GetMaterialsScrollAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(materials) != 2 {
		t.Fatalf("len=%d", len(materials))
	}
	if materials[0].ArticleNumber == nil || *materials[0].ArticleNumber != "NYM-315" {
		t.Fatalf("articleNumber=%v", materials[0].ArticleNumber)
	}
	if materials[0].Stock != 250 {
		t.Fatalf("stock=%v", materials[0].Stock)
	}
}

func TestGetMaterialsIncrementalRejectsUnknownMode(t *testing.T) {
	cfg, _ := config.Load()
	cfg.ERPAPIToken = "test"
	client := NewClient(cfg)
	if _, err := client.GetMaterialsIncremental(context.Background(), "weekly"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
