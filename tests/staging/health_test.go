//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, _ := makeRequest(t, "GET", path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestVersion(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/version", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var v map[string]string
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if v["version"] == "" {
		t.Error("Expected a non-empty version")
	}
}
