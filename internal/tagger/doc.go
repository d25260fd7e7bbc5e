package tagger

// Package tagger implements the edit session lifecycle on top of the backend
// API: validating and uploading a file, holding the editable tag form,
// saving and downloading the tagged result, and cleaning up server-side files
// when a session ends. It also owns the persisted light/dark preference.
// Nothing here depends on the UI toolkit; results are reported through
// callbacks so both the desktop UI and the CLI can drive it.
