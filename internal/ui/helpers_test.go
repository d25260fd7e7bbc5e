package ui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/mp3-tagger/internal/api"
	"github.com/ytget/mp3-tagger/internal/model"
)

// backendStub serves the four tagging endpoints
type backendStub struct {
	server *httptest.Server

	mu       sync.Mutex
	cleanups []string
}

func newBackendStub(t *testing.T) *backendStub {
	t.Helper()
	stub := &backendStub{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.UploadResponse{FileID: "abc123", Tags: model.Tags{Title: "Old Title"}})
	})
	mux.HandleFunc("/api/save-tags/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.SaveResponse{TaggedFileID: "xyz789"})
	})
	mux.HandleFunc("/api/download/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "tagged audio")
	})
	mux.HandleFunc("/api/cleanup/", func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.cleanups = append(stub.cleanups, strings.TrimPrefix(r.URL.Path, "/api/cleanup/"))
		stub.mu.Unlock()
	})

	stub.server = httptest.NewServer(mux)
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *backendStub) client() *api.Client {
	return api.NewClient(s.server.URL, 5*time.Second)
}

func (s *backendStub) cleanupIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cleanups...)
}
