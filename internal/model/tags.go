package model

import (
	"strings"
	"unicode/utf8"
)

// TagField names one editable tag slot. Values double as multipart form
// field names on the save endpoint.
type TagField string

const (
	FieldTitle  TagField = "title"
	FieldArtist TagField = "artist"
	FieldAlbum  TagField = "album"
	FieldYear   TagField = "year"
	FieldGenre  TagField = "genre"
)

// TagFields lists every editable field in display and submit order.
var TagFields = []TagField{FieldTitle, FieldArtist, FieldAlbum, FieldYear, FieldGenre}

// String returns the string representation of TagField
func (f TagField) String() string {
	return string(f)
}

// Label returns a human-friendly label for the field
func (f TagField) Label() string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// Tags is the user-editable MP3 metadata. An empty string means the field is absent.
type Tags struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Year   string `json:"year,omitempty"`
	Genre  string `json:"genre,omitempty"`
}

// TagValue is a single (field, value) pair.
type TagValue struct {
	Field TagField
	Value string
}

// Get returns the value of a field, or "" for an unknown field
func (t Tags) Get(field TagField) string {
	switch field {
	case FieldTitle:
		return t.Title
	case FieldArtist:
		return t.Artist
	case FieldAlbum:
		return t.Album
	case FieldYear:
		return t.Year
	case FieldGenre:
		return t.Genre
	default:
		return ""
	}
}

// Set updates one field and leaves the others untouched. Unknown fields are ignored.
func (t *Tags) Set(field TagField, value string) {
	switch field {
	case FieldTitle:
		t.Title = value
	case FieldArtist:
		t.Artist = value
	case FieldAlbum:
		t.Album = value
	case FieldYear:
		t.Year = value
	case FieldGenre:
		t.Genre = value
	}
}

// NonEmpty returns the fields that carry a value, in TagFields order
func (t Tags) NonEmpty() []TagValue {
	var values []TagValue
	for _, field := range TagFields {
		if v := t.Get(field); v != "" {
			values = append(values, TagValue{Field: field, Value: v})
		}
	}
	return values
}

// IsEmpty reports whether no field carries a value
func (t Tags) IsEmpty() bool {
	return len(t.NonEmpty()) == 0
}

// UploadResponse is returned by the upload endpoint
type UploadResponse struct {
	FileID string `json:"file_id"`
	Tags   Tags   `json:"tags"`
}

// SaveResponse is returned by the save-tags endpoint
type SaveResponse struct {
	TaggedFileID string `json:"tagged_file_id"`
}

// Cover is a locally selected cover-art image waiting to be submitted
type Cover struct {
	FileName    string
	ContentType string // e.g. "image/jpeg"; detected when empty
	Data        []byte
}

// DefaultDownloadName is used when the tag set has no title
const DefaultDownloadName = "tagged.mp3"

// MP3Extension is the only accepted upload extension (compared case-insensitively)
const MP3Extension = ".mp3"

// MaxDownloadNameBytes caps the base name so that name plus extension stays
// under the common 255 byte filename limit, with room for a " (N)" suffix.
const MaxDownloadNameBytes = 200

// DownloadFileName returns the name a tagged file is saved under: the title
// plus ".mp3", or DefaultDownloadName when the title is empty. Path separators
// are replaced so the result is always a single path element. Long titles are
// cut to MaxDownloadNameBytes on a UTF-8 boundary.
func DownloadFileName(title string) string {
	if title == "" {
		return DefaultDownloadName
	}

	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, title)

	if len(name) > MaxDownloadNameBytes {
		cut := MaxDownloadNameBytes
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}

	return name + MP3Extension
}
