package tagger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ytget/mp3-tagger/internal/model"
)

// MaxCoverSize is the largest accepted cover image in bytes
const MaxCoverSize = 10 << 20

// ReadCover loads an image into a cover, refusing empty input and input above
// MaxCoverSize. contentType may be empty; it is resolved when the cover is sent.
func ReadCover(name, contentType string, r io.Reader) (*model.Cover, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxCoverSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) > MaxCoverSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, MaxCoverSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", name)
	}

	return &model.Cover{FileName: name, ContentType: contentType, Data: data}, nil
}

// LoadCover reads a cover image from disk
func LoadCover(path string) (*model.Cover, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cover: %w", err)
	}
	defer f.Close()

	return ReadCover(filepath.Base(path), "", f)
}
