package tagger

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ytget/mp3-tagger/internal/api"
	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/model"
	"github.com/ytget/mp3-tagger/internal/platform"
)

// Form holds the editable tags of one uploaded file. A new Form is created for
// every file identifier; it never switches identifiers.
type Form struct {
	backend api.Backend
	fileID  string

	mu           sync.Mutex
	tags         model.Tags
	cover        *model.Cover
	taggedFileID string
	submitting   bool

	onError  func(string)
	onSaved  func(taggedFileID string)
	onChange func()
	onReset  func()
}

// NewForm creates a form seeded with exactly initialTags
func NewForm(backend api.Backend, fileID string, initialTags model.Tags, onError func(string)) *Form {
	return &Form{
		backend: backend,
		fileID:  fileID,
		tags:    initialTags,
		onError: onError,
	}
}

// SetSavedCallback sets the callback invoked after a successful save
func (f *Form) SetSavedCallback(callback func(taggedFileID string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSaved = callback
}

// SetChangeCallback sets the callback invoked whenever submit/download availability changes
func (f *Form) SetChangeCallback(callback func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = callback
}

// FileID returns the identifier this form edits
func (f *Form) FileID() string {
	return f.fileID
}

// Tags returns a copy of the current tags
func (f *Form) Tags() model.Tags {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tags
}

// SetField updates a single field; all other fields are preserved
func (f *Form) SetField(field model.TagField, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags.Set(field, value)
}

// SetCover replaces the selected cover art; nil clears it
func (f *Form) SetCover(cover *model.Cover) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cover = cover
}

// Cover returns the selected cover art, if any
func (f *Form) Cover() *model.Cover {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cover
}

// TaggedFileID returns the identifier of the last successful save, or ""
func (f *Form) TaggedFileID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.taggedFileID
}

// CanSubmit is false while a save is in flight
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.submitting
}

// CanDownload is true once a save has succeeded in this form
func (f *Form) CanDownload() bool {
	return f.TaggedFileID() != ""
}

// Submit sends every non-empty field plus the optional cover. Further submits
// are refused until this one finishes, whatever its outcome.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}
	f.submitting = true
	tags, cover := f.tags, f.cover
	f.mu.Unlock()
	f.notifyChange()

	resp, err := f.backend.SaveTags(ctx, f.fileID, tags, cover)

	f.mu.Lock()
	f.submitting = false
	if err == nil {
		f.taggedFileID = resp.TaggedFileID
	}
	onSaved := f.onSaved
	f.mu.Unlock()

	if err != nil {
		logger.Warn("Save failed", logger.String("file_id", f.fileID), logger.ErrorField(err))
		report(f.onError, MsgSaveFailed)
		f.notifyChange()
		return fmt.Errorf("save tags for %s: %w", f.fileID, err)
	}

	if onSaved != nil {
		onSaved(resp.TaggedFileID)
	}
	f.notifyChange()
	return nil
}

// Download saves the tagged file into dir as "<title>.mp3" (or the default
// name) and returns its path. It is not invokable before a successful save.
func (f *Form) Download(ctx context.Context, dir string) (string, error) {
	f.mu.Lock()
	taggedFileID, title := f.taggedFileID, f.tags.Title
	f.mu.Unlock()

	if taggedFileID == "" {
		return "", ErrNotSaved
	}

	path, err := platform.SaveDownload(dir, model.DownloadFileName(title), func(w io.Writer) error {
		_, err := f.backend.Download(ctx, taggedFileID, w)
		return err
	})
	if err != nil {
		logger.Warn("Download failed", logger.String("tagged_file_id", taggedFileID), logger.ErrorField(err))
		report(f.onError, MsgDownloadFailed)
		return "", fmt.Errorf("download %s: %w", taggedFileID, err)
	}

	logger.Info("Tagged file saved", logger.String("path", path))
	return path, nil
}

// Reset discards the tagged output and asks the owner to end the session
func (f *Form) Reset() {
	f.mu.Lock()
	f.taggedFileID = ""
	f.cover = nil
	onReset := f.onReset
	f.mu.Unlock()

	if onReset != nil {
		onReset()
	}
}

func (f *Form) notifyChange() {
	f.mu.Lock()
	onChange := f.onChange
	f.mu.Unlock()
	if onChange != nil {
		onChange()
	}
}
