package tagger

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/ytget/mp3-tagger/internal/api"
	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/model"
)

// DefaultCleanupTimeout bounds a single best-effort cleanup request
const DefaultCleanupTimeout = 10 * time.Second

// Controller owns the session: at most one active file identifier, switching
// between Idle (upload) and Editing (tag form). Leaving Editing, by reset or
// teardown, issues exactly one fire-and-forget cleanup for the outgoing id.
type Controller struct {
	backend  api.Backend
	uploader *Uploader

	mu     sync.Mutex
	state  model.SessionState
	fileID string
	form   *Form
	closed bool

	onError func(string)
	onState func(model.SessionState)
	onSaved func(taggedFileID string)

	cleanupTimeout time.Duration
	cleanups       sync.WaitGroup
}

// NewController creates an idle controller. Every user-facing error of the
// session is funnelled to onError.
func NewController(backend api.Backend, onError func(string)) *Controller {
	return &Controller{
		backend:        backend,
		uploader:       NewUploader(backend),
		state:          model.SessionIdle,
		onError:        onError,
		cleanupTimeout: DefaultCleanupTimeout,
	}
}

// SetStateCallback sets the callback invoked after every state transition
func (c *Controller) SetStateCallback(callback func(model.SessionState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = callback
}

// SetSavedCallback sets the callback wired into every form for successful saves
func (c *Controller) SetSavedCallback(callback func(taggedFileID string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSaved = callback
}

// SetCleanupTimeout sets the timeout of each cleanup request
func (c *Controller) SetCleanupTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupTimeout = timeout
}

// State returns the current session state
func (c *Controller) State() model.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// FileID returns the active file identifier, or "" when idle
func (c *Controller) FileID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fileID
}

// Form returns the active form, or nil when idle
func (c *Controller) Form() *Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Notify forwards a user-facing message to the error callback
func (c *Controller) Notify(message string) {
	report(c.onError, message)
}

// Upload validates and uploads a file; success moves the session to Editing
func (c *Controller) Upload(ctx context.Context, fileName string, r io.Reader) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	return c.uploader.Upload(ctx, fileName, r, c.HandleUploadSuccess, c.Notify)
}

// HandleUploadSuccess starts an Editing session for resp. A session that is
// still active is exited first, so its cleanup runs as usual.
func (c *Controller) HandleUploadSuccess(resp *model.UploadResponse) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		logger.Warn("Upload finished after teardown, ignoring", logger.String("file_id", resp.FileID))
		return
	}

	previous := c.exitLocked()

	form := NewForm(c.backend, resp.FileID, resp.Tags, c.Notify)
	form.onSaved = c.onSaved
	form.onReset = func() { c.resetForm(form) }

	c.fileID = resp.FileID
	c.form = form
	c.state = model.SessionEditing
	onState := c.onState
	c.mu.Unlock()

	c.startCleanup(previous)
	logger.Info("Editing session started", logger.String("file_id", resp.FileID))

	if onState != nil {
		onState(model.SessionEditing)
	}
}

// Reset ends the active session unconditionally. It is a no-op when idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	previous := c.exitLocked()
	onState := c.onState
	c.mu.Unlock()

	if previous == "" {
		return
	}
	c.startCleanup(previous)
	logger.Info("Editing session reset", logger.String("file_id", previous))

	if onState != nil {
		onState(model.SessionIdle)
	}
}

// Close tears the controller down, ending any active session. Later uploads are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	previous := c.exitLocked()
	c.mu.Unlock()

	c.startCleanup(previous)
}

// WaitCleanups blocks until every cleanup request has finished or ctx is done
func (c *Controller) WaitCleanups(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.cleanups.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resetForm resets the session only if form still belongs to it
func (c *Controller) resetForm(form *Form) {
	c.mu.Lock()
	current := c.form == form
	c.mu.Unlock()

	if current {
		c.Reset()
	}
}

// exitLocked leaves Editing and returns the outgoing file id ("" if idle).
// Must be called with c.mu held.
func (c *Controller) exitLocked() string {
	if c.state != model.SessionEditing {
		return ""
	}

	previous := c.fileID
	if c.form != nil {
		c.form.mu.Lock()
		c.form.taggedFileID = ""
		c.form.mu.Unlock()
	}
	c.fileID = ""
	c.form = nil
	c.state = model.SessionIdle
	return previous
}

// startCleanup fires the cleanup request in the background. Failures are only logged.
func (c *Controller) startCleanup(fileID string) {
	if fileID == "" {
		return
	}

	c.mu.Lock()
	timeout := c.cleanupTimeout
	c.mu.Unlock()

	c.cleanups.Add(1)
	go func() {
		defer c.cleanups.Done()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := c.backend.Cleanup(ctx, fileID); err != nil {
			logger.Warn("Cleanup failed", logger.String("file_id", fileID), logger.ErrorField(err))
			return
		}
		logger.Debug("Cleanup done", logger.String("file_id", fileID))
	}()
}
