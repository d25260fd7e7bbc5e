package tagger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ytget/mp3-tagger/internal/model"
)

func TestForm_SetFieldPreservesOthers(t *testing.T) {
	form := NewForm(newFakeBackend(), "abc123", model.Tags{Title: "Old Title", Year: "1999"}, nil)

	form.SetField(model.FieldArtist, "New Artist")
	form.SetField(model.FieldYear, "")

	expected := model.Tags{Title: "Old Title", Artist: "New Artist"}
	if form.Tags() != expected {
		t.Errorf("Expected %+v, got %+v", expected, form.Tags())
	}
	if form.FileID() != "abc123" {
		t.Errorf("Expected file id abc123, got %s", form.FileID())
	}
}

func TestForm_SubmitSuccess(t *testing.T) {
	backend := newFakeBackend()
	var msgs messages
	form := NewForm(backend, "abc123", model.Tags{Title: "Old Title"}, msgs.add)

	var savedID string
	changes := 0
	form.SetSavedCallback(func(id string) { savedID = id })
	form.SetChangeCallback(func() { changes++ })

	cover := &model.Cover{FileName: "front.jpg", Data: []byte{0xff, 0xd8}}
	form.SetField(model.FieldArtist, "New Artist")
	form.SetCover(cover)

	if form.CanDownload() {
		t.Fatal("Download should be unavailable before a save")
	}

	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if savedID != "xyz789" || form.TaggedFileID() != "xyz789" {
		t.Errorf("Expected tagged id xyz789, got callback=%q stored=%q", savedID, form.TaggedFileID())
	}
	if !form.CanDownload() || !form.CanSubmit() {
		t.Error("Expected download available and submit re-enabled")
	}
	if backend.savedTags[0] != (model.Tags{Title: "Old Title", Artist: "New Artist"}) {
		t.Errorf("Unexpected submitted tags %+v", backend.savedTags[0])
	}
	if backend.savedCovers[0] != cover {
		t.Error("Expected cover to be submitted")
	}
	if changes < 2 {
		t.Errorf("Expected change notifications around submit, got %d", changes)
	}
	if len(msgs.all()) != 0 {
		t.Errorf("Expected no errors, got %v", msgs.all())
	}
}

func TestForm_SubmitFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.saveErr = errBackend
	var msgs messages
	form := NewForm(backend, "abc123", model.Tags{Title: "Old Title"}, msgs.add)
	form.SetField(model.FieldGenre, "Jazz")

	err := form.Submit(context.Background())
	if !errors.Is(err, errBackend) {
		t.Errorf("Expected backend error, got %v", err)
	}
	if got := msgs.all(); len(got) != 1 || got[0] != MsgSaveFailed {
		t.Errorf("Expected [%q], got %v", MsgSaveFailed, got)
	}
	if form.CanDownload() {
		t.Error("Download must stay unavailable after a failed save")
	}
	if !form.CanSubmit() {
		t.Error("Submit must be re-enabled after failure")
	}
	if form.Tags().Genre != "Jazz" {
		t.Error("Typed values must survive a failed save")
	}
}

func TestForm_SubmitRefusedWhileInFlight(t *testing.T) {
	backend := newFakeBackend()
	backend.saveGate = make(chan struct{})
	backend.saveStarted = make(chan struct{}, 1)
	form := NewForm(backend, "abc123", model.Tags{}, nil)

	done := make(chan error, 1)
	go func() { done <- form.Submit(context.Background()) }()

	select {
	case <-backend.saveStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("First submit never reached the backend")
	}

	if form.CanSubmit() {
		t.Error("Submit should be disabled while a save is in flight")
	}
	if err := form.Submit(context.Background()); !errors.Is(err, ErrSubmitInProgress) {
		t.Errorf("Expected ErrSubmitInProgress, got %v", err)
	}

	close(backend.saveGate)
	if err := <-done; err != nil {
		t.Fatalf("First submit failed: %v", err)
	}
	if len(backend.savedTags) != 1 {
		t.Errorf("Expected exactly one save call, got %d", len(backend.savedTags))
	}
}

func TestForm_DownloadBeforeSave(t *testing.T) {
	backend := newFakeBackend()
	var msgs messages
	form := NewForm(backend, "abc123", model.Tags{Title: "Old Title"}, msgs.add)

	_, err := form.Download(context.Background(), t.TempDir())
	if !errors.Is(err, ErrNotSaved) {
		t.Errorf("Expected ErrNotSaved, got %v", err)
	}
	if backend.downloadCount() != 0 {
		t.Error("No download request may be issued before a save")
	}
	if len(msgs.all()) != 0 {
		t.Errorf("Unavailable download is not a user-facing failure, got %v", msgs.all())
	}
}

func TestForm_DownloadUsesTitle(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Old Title", "Old Title.mp3"},
		{"", "tagged.mp3"},
		{strings.Repeat("ж", 150), strings.Repeat("ж", 100) + ".mp3"},
	}

	for _, test := range tests {
		backend := newFakeBackend()
		form := NewForm(backend, "abc123", model.Tags{Title: test.title}, nil)
		if err := form.Submit(context.Background()); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		dir := t.TempDir()
		path, err := form.Download(context.Background(), dir)
		if err != nil {
			t.Fatalf("Download failed: %v", err)
		}

		if path != filepath.Join(dir, test.expected) {
			t.Errorf("Expected %s, got %s", test.expected, path)
		}
		data, err := os.ReadFile(path)
		if err != nil || string(data) != "tagged audio" {
			t.Errorf("Unexpected file content %q (err %v)", data, err)
		}
		if backend.downloads[0] != "xyz789" {
			t.Errorf("Expected download of xyz789, got %s", backend.downloads[0])
		}
	}
}

func TestForm_DownloadUsesCurrentTitle(t *testing.T) {
	form := NewForm(newFakeBackend(), "abc123", model.Tags{Title: "Old Title"}, nil)
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	form.SetField(model.FieldTitle, "Edited After Save")

	path, err := form.Download(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if filepath.Base(path) != "Edited After Save.mp3" {
		t.Errorf("Expected current title to name the file, got %s", filepath.Base(path))
	}
}

func TestForm_DownloadFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.downErr = errBackend
	var msgs messages
	form := NewForm(backend, "abc123", model.Tags{Title: "Old Title"}, msgs.add)
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	dir := t.TempDir()
	if _, err := form.Download(context.Background(), dir); !errors.Is(err, errBackend) {
		t.Errorf("Expected backend error, got %v", err)
	}
	if got := msgs.all(); len(got) != 1 || got[0] != MsgDownloadFailed {
		t.Errorf("Expected [%q], got %v", MsgDownloadFailed, got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Failed download must not leave files, found %d", len(entries))
	}
}

func TestForm_ResetDiscardsTaggedOutput(t *testing.T) {
	form := NewForm(newFakeBackend(), "abc123", model.Tags{}, nil)
	resetCalled := false
	form.onReset = func() { resetCalled = true }

	form.SetCover(&model.Cover{FileName: "a.png"})
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	form.Reset()

	if !resetCalled {
		t.Error("Reset must notify the owner")
	}
	if form.CanDownload() || form.Cover() != nil {
		t.Error("Reset must discard tagged id and cover")
	}
}
