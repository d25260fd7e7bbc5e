package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/model"
)

// Endpoint paths relative to the base URL
const (
	PathUpload   = "/api/upload"
	PathSaveTags = "/api/save-tags/"
	PathDownload = "/api/download/"
	PathCleanup  = "/api/cleanup/"
)

// Multipart field names
const (
	FieldFile  = "file"
	FieldCover = "cover"
)

const (
	HeaderRequestID   = "X-Request-ID"
	DefaultTimeout    = 30 * time.Second
	errorBodyLimit    = 512
	fallbackImageType = "application/octet-stream"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Client talks to the tagging backend
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. A non-positive timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL sets the base URL used by subsequent requests
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}


// Upload sends an MP3 as multipart field "file" and returns the new file id and its tags
func (c *Client) Upload(ctx context.Context, fileName string, r io.Reader) (*model.UploadResponse, error) {
	const op = "upload"

	// Stream the file instead of buffering it in memory
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile(FieldFile, fileName)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, http.MethodPost, PathUpload, pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp model.UploadResponse
	if err := c.doJSON(req, op, &resp); err != nil {
		return nil, err
	}
	if resp.FileID == "" {
		return nil, fmt.Errorf("%s: response has no file_id", op)
	}

	logger.Info("File uploaded",
		logger.String("file_name", fileName),
		logger.String("file_id", resp.FileID))
	return &resp, nil
}

// SaveTags posts every non-empty tag plus the optional cover for fileID
func (c *Client) SaveTags(ctx context.Context, fileID string, tags model.Tags, cover *model.Cover) (*model.SaveResponse, error) {
	const op = "save tags"
	if fileID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyID)
	}

	body, contentType, err := buildSaveForm(tags, cover)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, PathSaveTags+url.PathEscape(fileID), body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", contentType)

	var resp model.SaveResponse
	if err := c.doJSON(req, op, &resp); err != nil {
		return nil, err
	}
	if resp.TaggedFileID == "" {
		return nil, fmt.Errorf("%s: response has no tagged_file_id", op)
	}

	logger.Info("Tags saved",
		logger.String("file_id", fileID),
		logger.String("tagged_file_id", resp.TaggedFileID),
		logger.Int("fields", len(tags.NonEmpty())),
		logger.Bool("cover", cover != nil))
	return &resp, nil
}

// Download streams the tagged MP3 into w and returns the number of bytes written
func (c *Client) Download(ctx context.Context, taggedFileID string, w io.Writer) (int64, error) {
	const op = "download"
	if taggedFileID == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyID)
	}

	req, err := c.newRequest(ctx, http.MethodGet, PathDownload+url.PathEscape(taggedFileID), nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.do(req, op)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("%s: failed to read body: %w", op, err)
	}

	logger.Info("Tagged file downloaded",
		logger.String("tagged_file_id", taggedFileID),
		logger.Int64("bytes", n))
	return n, nil
}

// Cleanup asks the backend to delete the uploaded and tagged files of fileID.
// The response body is ignored.
func (c *Client) Cleanup(ctx context.Context, fileID string) error {
	const op = "cleanup"
	if fileID == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyID)
	}

	req, err := c.newRequest(ctx, http.MethodDelete, PathCleanup+url.PathEscape(fileID), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.do(req, op)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	logger.Debug("Cleanup acknowledged", logger.String("file_id", fileID))
	return nil
}

// newRequest builds a request against the base URL tagged with a fresh request id
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(HeaderRequestID, uuid.NewString())
	return req, nil
}

// do sends the request and turns non-2xx responses into *StatusError.
// On success the caller owns resp.Body.
func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Request failed",
			logger.String("op", op),
			logger.String("request_id", req.Header.Get(HeaderRequestID)),
			logger.ErrorField(err))
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}

	logger.Debug("Request completed",
		logger.String("op", op),
		logger.String("method", req.Method),
		logger.String("url", req.URL.String()),
		logger.String("request_id", req.Header.Get(HeaderRequestID)),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		resp.Body.Close()
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	return resp, nil
}

// doJSON sends the request and decodes a JSON body into out
func (c *Client) doJSON(req *http.Request, op string, out interface{}) error {
	resp, err := c.do(req, op)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

// buildSaveForm encodes non-empty tags and the optional cover as multipart form data
func buildSaveForm(tags model.Tags, cover *model.Cover) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	for _, tv := range tags.NonEmpty() {
		if err := mw.WriteField(tv.Field.String(), tv.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", tv.Field, err)
		}
	}

	if cover != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			FieldCover, quoteEscaper.Replace(cover.FileName)))
		h.Set("Content-Type", CoverContentType(cover))

		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create cover part: %w", err)
		}
		if _, err := part.Write(cover.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write cover: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}
	return body, mw.FormDataContentType(), nil
}

// CoverContentType returns the cover's declared image type, else a type guessed from
// the file extension, else one sniffed from the image bytes.
func CoverContentType(cover *model.Cover) string {
	if strings.HasPrefix(cover.ContentType, "image/") {
		return cover.ContentType
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(cover.FileName))); strings.HasPrefix(ct, "image/") {
		return ct
	}
	if len(cover.Data) > 0 {
		if ct := http.DetectContentType(cover.Data); strings.HasPrefix(ct, "image/") {
			return ct
		}
	}
	return fallbackImageType
}
