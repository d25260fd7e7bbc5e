package tagger

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ytget/mp3-tagger/internal/api"
	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/model"
)

// Uploader validates a candidate file and sends it to the backend
type Uploader struct {
	backend api.Backend
}

// NewUploader creates a new uploader
func NewUploader(backend api.Backend) *Uploader {
	return &Uploader{backend: backend}
}

// ValidateFileName accepts only names ending in ".mp3", case-insensitively.
// The content is never inspected.
func ValidateFileName(name string) error {
	if !strings.HasSuffix(strings.ToLower(name), model.MP3Extension) {
		return fmt.Errorf("%w: %s", ErrNotMP3, name)
	}
	return nil
}

// Upload sends one file. Invalid names are rejected with MsgInvalidFile and no
// network call; any backend failure is reported as MsgUploadFailed. Exactly one
// of onSuccess and onError is invoked. The returned error carries the details.
func (u *Uploader) Upload(ctx context.Context, fileName string, r io.Reader,
	onSuccess func(*model.UploadResponse), onError func(string)) error {

	if err := ValidateFileName(fileName); err != nil {
		logger.Info("Rejected upload", logger.String("file_name", fileName))
		report(onError, MsgInvalidFile)
		return err
	}

	resp, err := u.backend.Upload(ctx, fileName, r)
	if err != nil {
		logger.Warn("Upload failed", logger.String("file_name", fileName), logger.ErrorField(err))
		report(onError, MsgUploadFailed)
		return err
	}

	if onSuccess != nil {
		onSuccess(resp)
	}
	return nil
}

func report(onError func(string), message string) {
	if onError != nil {
		onError(message)
	}
}
