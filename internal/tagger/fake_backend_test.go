package tagger

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/ytget/mp3-tagger/internal/model"
)

var errBackend = errors.New("backend unavailable")

// fakeBackend records calls and returns canned results
type fakeBackend struct {
	mu sync.Mutex

	uploadResp *model.UploadResponse
	uploadErr  error
	saveResp   *model.SaveResponse
	saveErr    error
	saveGate   chan struct{} // when set, SaveTags blocks until it is closed
	download   string
	downErr    error
	cleanupErr error

	uploads     []string
	savedTags   []model.Tags
	savedCovers []*model.Cover
	downloads   []string
	cleanups    []string
	deadlines   []time.Time
	saveStarted chan struct{}
}

func (f *fakeBackend) Upload(ctx context.Context, fileName string, r io.Reader) (*model.UploadResponse, error) {
	io.Copy(io.Discard, r)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, fileName)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	resp := *f.uploadResp
	return &resp, nil
}

func (f *fakeBackend) SaveTags(ctx context.Context, fileID string, tags model.Tags, cover *model.Cover) (*model.SaveResponse, error) {
	f.mu.Lock()
	f.savedTags = append(f.savedTags, tags)
	f.savedCovers = append(f.savedCovers, cover)
	gate, started := f.saveGate, f.saveStarted
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	if f.saveErr != nil {
		return nil, f.saveErr
	}
	resp := *f.saveResp
	return &resp, nil
}

func (f *fakeBackend) Download(ctx context.Context, taggedFileID string, w io.Writer) (int64, error) {
	f.mu.Lock()
	f.downloads = append(f.downloads, taggedFileID)
	f.mu.Unlock()

	if f.downErr != nil {
		return 0, f.downErr
	}
	n, err := io.WriteString(w, f.download)
	return int64(n), err
}

func (f *fakeBackend) Cleanup(ctx context.Context, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanups = append(f.cleanups, fileID)
	if deadline, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, deadline)
	}
	return f.cleanupErr
}

func (f *fakeBackend) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func (f *fakeBackend) cleanupIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cleanups...)
}

func (f *fakeBackend) downloadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.downloads)
}

// messages collects error callback invocations
type messages struct {
	mu   sync.Mutex
	list []string
}

func (m *messages) add(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = append(m.list, msg)
}

func (m *messages) all() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.list...)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		uploadResp: &model.UploadResponse{FileID: "abc123", Tags: model.Tags{Title: "Old Title"}},
		saveResp:   &model.SaveResponse{TaggedFileID: "xyz789"},
		download:   "tagged audio",
	}
}

func (f *fakeBackend) cleanupDeadlines() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.deadlines...)
}
