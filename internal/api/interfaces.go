package api

import (
	"context"
	"io"

	"github.com/ytget/mp3-tagger/internal/model"
)

// Backend defines the operations the tagging backend offers.
type Backend interface {
	Upload(ctx context.Context, fileName string, r io.Reader) (*model.UploadResponse, error)
	SaveTags(ctx context.Context, fileID string, tags model.Tags, cover *model.Cover) (*model.SaveResponse, error)
	Download(ctx context.Context, taggedFileID string, w io.Writer) (int64, error)
	Cleanup(ctx context.Context, fileID string) error
}

var _ Backend = (*Client)(nil)
