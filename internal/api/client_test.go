package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

// binServer is a minimal in-memory jsonbin.
type binServer struct {
	mu     sync.Mutex
	key    string
	record []byte
	puts   int
}

func (b *binServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(MasterKeyHeader) != b.key {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid X-Master-Key"}`))
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/b/bin1/latest":
		if b.record == nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Bin not found"}`))
			return
		}
		w.Write([]byte(`{"record":` + string(b.record) + `,"metadata":{"id":"bin1","private":true}}`))
	case r.Method == http.MethodPut && r.URL.Path == "/b/bin1":
		body, _ := io.ReadAll(r.Body)
		b.record = body
		b.puts++
		w.Write([]byte(`{"record":` + string(body) + `,"metadata":{"private":true}}`))
	case r.Method == http.MethodPost && r.URL.Path == "/b":
		w.Write([]byte(`{"record":{},"metadata":{"id":"bin2","private":true}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestClientRoundTripIsByteIdentical(t *testing.T) {
	saved, err := json.Marshal(domain.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	bins := &binServer{key: "k", record: saved}
	srv := httptest.NewServer(bins)
	defer srv.Close()

	c := NewClient(srv.URL+"/", "bin1", "k")
	doc, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if err := c.Put(context.Background(), doc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if string(bins.record) != string(saved) {
		t.Errorf("Expected re-saved document to be byte-identical\nbefore: %s\nafter:  %s", saved, bins.record)
	}
}

func TestClientFetchPartialRecord(t *testing.T) {
	bins := &binServer{key: "k", record: []byte(`{"notes":[],"tasks":null}`)}
	srv := httptest.NewServer(bins)
	defer srv.Close()

	doc, err := NewClient(srv.URL, "bin1", "k").Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if doc.Notes == nil || len(doc.Notes) != 0 {
		t.Errorf("Expected present empty notes, got %#v", doc.Notes)
	}
	if doc.Tasks != nil || doc.Decks != nil {
		t.Errorf("Expected null and absent collections to be nil")
	}
}

func TestClientErrors(t *testing.T) {
	bins := &binServer{key: "k"}
	srv := httptest.NewServer(bins)
	defer srv.Close()

	_, err := NewClient(srv.URL, "bin1", "k").Fetch(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	err = NewClient(srv.URL, "bin1", "wrong").Put(context.Background(), domain.Document{})
	if err == nil || !strings.Contains(err.Error(), "Invalid X-Master-Key") {
		t.Errorf("Expected server message in error, got %v", err)
	}
}

func TestClientCreate(t *testing.T) {
	srv := httptest.NewServer(&binServer{key: "k"})
	defer srv.Close()

	id, err := NewClient(srv.URL, "", "k").Create(context.Background(), domain.Defaults())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id != "bin2" {
		t.Errorf("Expected bin2, got %q", id)
	}
}

func TestIsConfigured(t *testing.T) {
	testCases := []struct {
		name           string
		url, bin, key  string
		wantConfigured bool
	}{
		{"complete", "http://x", "b", "k", true},
		{"no key", "http://x", "b", "", false},
		{"no bin", "http://x", "", "k", false},
		{"no url", "", "b", "k", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewClient(tc.url, tc.bin, tc.key).IsConfigured(); got != tc.wantConfigured {
				t.Errorf("Expected %v, got %v", tc.wantConfigured, got)
			}
		})
	}
}

func TestFetchDecodesIntoDocument(t *testing.T) {
	bins := &binServer{key: "k", record: []byte(`{"courses":[{"id":"c","name":"CS","code":"CS 1","instructor":"","color":"blue","term":"Full Year"}]}`)}
	srv := httptest.NewServer(bins)
	defer srv.Close()

	doc, err := NewClient(srv.URL, "bin1", "k").Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.Course{{ID: "c", Name: "CS", Code: "CS 1", Color: domain.ColorBlue, Term: domain.TermFullYear}}
	if diff := cmp.Diff(want, doc.Courses); diff != "" {
		t.Errorf("Courses mismatch (-want +got):\n%s", diff)
	}
}
