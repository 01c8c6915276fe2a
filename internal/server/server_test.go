package server

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nzaccagnino/studydesk/internal/api"
	"github.com/nzaccagnino/studydesk/internal/db"
	"github.com/nzaccagnino/studydesk/internal/domain"
	"github.com/nzaccagnino/studydesk/internal/logger"
)

const testKey = "master-secret"

func newTestServer(t *testing.T, rateLimit int) *httptest.Server {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "bins.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	s, err := New(database, Config{MasterKey: testKey, RateLimitPerMinute: rateLimit}, logger.NewNop())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	srv := httptest.NewServer(s)
	t.Cleanup(func() {
		srv.Close()
		s.Close()
		database.Close()
	})
	return srv
}

func do(t *testing.T, method, url, key, body string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if key != "" {
		req.Header.Set(masterKeyHeader, key)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	var out map[string]json.RawMessage
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestNewRequiresMasterKey(t *testing.T) {
	if _, err := New(nil, Config{}, logger.NewNop()); err == nil {
		t.Error("Expected error without master key")
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, 100)
	resp, body := do(t, http.MethodGet, srv.URL+"/health", "", "")
	if resp.StatusCode != http.StatusOK || string(body["status"]) != `"ok"` {
		t.Errorf("Expected healthy, got %d %v", resp.StatusCode, body)
	}
}

func TestMasterKeyRequired(t *testing.T) {
	srv := newTestServer(t, 100)

	testCases := []struct {
		name string
		key  string
	}{
		{"missing", ""},
		{"wrong", "guess"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/b", tc.key, `{}`)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", resp.StatusCode)
			}
			if len(body["message"]) == 0 {
				t.Error("Expected message in error body")
			}
		})
	}
}

func TestMasterKeyVerdictCached(t *testing.T) {
	database, err := db.New(filepath.Join(t.TempDir(), "bins.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()
	s, err := New(database, Config{MasterKey: testKey}, logger.NewNop())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	defer s.Close()

	if s.checkMasterKey("guess") {
		t.Fatal("Expected wrong key rejected")
	}
	if _, ok := s.accepted.Load(sha256.Sum256([]byte("guess"))); ok {
		t.Error("Expected rejected key not cached")
	}

	for i := 0; i < 3; i++ {
		if !s.checkMasterKey(testKey) {
			t.Fatalf("Expected master key accepted on call %d", i+1)
		}
	}
	if _, ok := s.accepted.Load(sha256.Sum256([]byte(testKey))); !ok {
		t.Error("Expected accepted key cached")
	}
	if s.checkMasterKey("guess") {
		t.Error("Expected wrong key still rejected after caching")
	}
}

func TestBinCRUD(t *testing.T) {
	srv := newTestServer(t, 100)

	resp, body := do(t, http.MethodPost, srv.URL+"/b", testKey, `{"notes":[]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 on create, got %d", resp.StatusCode)
	}
	var meta struct {
		ID string `json:"id"`
	}
	json.Unmarshal(body["metadata"], &meta)
	if meta.ID == "" {
		t.Fatal("Expected bin id in metadata")
	}

	_, body = do(t, http.MethodGet, srv.URL+"/b/"+meta.ID+"/latest", testKey, "")
	if string(body["record"]) != `{"notes":[]}` {
		t.Errorf("Expected stored record, got %s", body["record"])
	}

	resp, _ = do(t, http.MethodPut, srv.URL+"/b/"+meta.ID, testKey, `{"tasks":[]}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 on put, got %d", resp.StatusCode)
	}
	_, body = do(t, http.MethodGet, srv.URL+"/b/"+meta.ID, testKey, "")
	if string(body["record"]) != `{"tasks":[]}` {
		t.Errorf("Expected overwritten record, got %s", body["record"])
	}

	resp, _ = do(t, http.MethodPut, srv.URL+"/b/"+meta.ID, testKey, `{not json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid JSON, got %d", resp.StatusCode)
	}

	resp, _ = do(t, http.MethodDelete, srv.URL+"/b/"+meta.ID, testKey, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 on delete, got %d", resp.StatusCode)
	}
	resp, _ = do(t, http.MethodGet, srv.URL+"/b/"+meta.ID+"/latest", testKey, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", resp.StatusCode)
	}
	resp, _ = do(t, http.MethodPut, srv.URL+"/b/"+meta.ID, testKey, `{}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 on put to missing bin, got %d", resp.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, 2)

	var last int
	for i := 0; i < 3; i++ {
		resp, _ := do(t, http.MethodGet, srv.URL+"/b/x", testKey, "")
		last = resp.StatusCode
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("Expected 429 on third request, got %d", last)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, 100)
	do(t, http.MethodPost, srv.URL+"/b", testKey, `{}`)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"http_requests_total", `bin_writes_total{op="create"} 1`, "bins_stored 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in metrics output", want)
		}
	}
}

func TestClientAgainstServer(t *testing.T) {
	srv := newTestServer(t, 100)
	ctx := context.Background()

	id, err := api.NewClient(srv.URL, "", testKey).Create(ctx, domain.Document{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	client := api.NewClient(srv.URL, id, testKey)

	if err := client.Put(ctx, domain.Defaults()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	first, err := client.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if err := client.Put(ctx, first); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	second, err := client.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("Expected load and re-save to be byte-identical")
	}
}
