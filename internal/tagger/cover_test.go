package tagger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCover(t *testing.T) {
	cover, err := ReadCover("front.jpg", "image/jpeg", strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("ReadCover failed: %v", err)
	}
	if cover.FileName != "front.jpg" || cover.ContentType != "image/jpeg" || string(cover.Data) != "jpeg bytes" {
		t.Errorf("Unexpected cover %+v", cover)
	}

	if _, err := ReadCover("empty.png", "", strings.NewReader("")); err == nil {
		t.Error("Empty image should be rejected")
	}

	big := bytes.NewReader(make([]byte, MaxCoverSize+1))
	if _, err := ReadCover("big.png", "", big); err == nil {
		t.Error("Oversized image should be rejected")
	}
}

func TestLoadCover(t *testing.T) {
	path := filepath.Join(t.TempDir(), "front.png")
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cover, err := LoadCover(path)
	if err != nil {
		t.Fatalf("LoadCover failed: %v", err)
	}
	if cover.FileName != "front.png" || len(cover.Data) != 8 {
		t.Errorf("Unexpected cover %+v", cover)
	}

	if _, err := LoadCover(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Missing file should fail")
	}
}
