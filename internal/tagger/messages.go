package tagger

import "errors"

// User-facing messages. Each operation collapses every failure into one message.
const (
	MsgInvalidFile    = "Please upload an MP3 file"
	MsgUploadFailed   = "Failed to upload file"
	MsgSaveFailed     = "Failed to save tags"
	MsgDownloadFailed = "Failed to download file"
	MsgTagsSaved      = "Tags saved successfully"
)

var (
	// ErrNotMP3 is returned for file names without a case-insensitive ".mp3" suffix
	ErrNotMP3 = errors.New("file is not an MP3")

	// ErrNotSaved is returned by Download before a save succeeded
	ErrNotSaved = errors.New("tags have not been saved yet")

	// ErrSubmitInProgress is returned by Submit while another submit is running
	ErrSubmitInProgress = errors.New("save already in progress")

	// ErrClosed is returned once the controller has been torn down
	ErrClosed = errors.New("session controller closed")
)
