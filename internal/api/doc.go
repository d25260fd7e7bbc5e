package api

// Package api is the HTTP client for the tagging backend: upload an MP3,
// save edited tags (with optional cover art), download the tagged result and
// clean up server-side files.
