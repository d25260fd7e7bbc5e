package model

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTags_SetKeepsOtherFields(t *testing.T) {
	tags := Tags{Title: "Old Title", Album: "Album"}
	tags.Set(FieldArtist, "New Artist")

	expected := Tags{Title: "Old Title", Artist: "New Artist", Album: "Album"}
	if tags != expected {
		t.Errorf("Set() = %+v, expected %+v", tags, expected)
	}

	tags.Set(TagField("comment"), "ignored")
	if tags != expected {
		t.Errorf("Set() with unknown field changed tags: %+v", tags)
	}
}

func TestTags_Get(t *testing.T) {
	tags := Tags{Title: "T", Artist: "A", Album: "B", Year: "1999", Genre: "Rock"}

	tests := []struct {
		field    TagField
		expected string
	}{
		{FieldTitle, "T"},
		{FieldArtist, "A"},
		{FieldAlbum, "B"},
		{FieldYear, "1999"},
		{FieldGenre, "Rock"},
		{TagField("unknown"), ""},
	}

	for _, test := range tests {
		if result := tags.Get(test.field); result != test.expected {
			t.Errorf("Get(%s) = %q, expected %q", test.field, result, test.expected)
		}
	}
}

func TestTags_NonEmpty(t *testing.T) {
	tags := Tags{Title: "Old Title", Artist: "New Artist"}
	values := tags.NonEmpty()

	expected := []TagValue{
		{Field: FieldTitle, Value: "Old Title"},
		{Field: FieldArtist, Value: "New Artist"},
	}

	if len(values) != len(expected) {
		t.Fatalf("Expected %d values, got %d: %+v", len(expected), len(values), values)
	}
	for i := range expected {
		if values[i] != expected[i] {
			t.Errorf("Value %d: expected %+v, got %+v", i, expected[i], values[i])
		}
	}

	if !(Tags{}).IsEmpty() {
		t.Error("Empty tags should report IsEmpty")
	}
	if tags.IsEmpty() {
		t.Error("Tags with a title should not report IsEmpty")
	}
}

func TestTagField_Label(t *testing.T) {
	if FieldTitle.Label() != "Title" {
		t.Errorf("Expected 'Title', got %q", FieldTitle.Label())
	}
	if TagField("").Label() != "" {
		t.Error("Expected empty label for empty field")
	}
}

func TestUploadResponse_Decode(t *testing.T) {
	body := `{"file_id":"abc123","tags":{"title":"Old Title","artist":"","album":"","year":"","genre":""}}`

	var resp UploadResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if resp.FileID != "abc123" {
		t.Errorf("Expected file id 'abc123', got %q", resp.FileID)
	}
	if resp.Tags != (Tags{Title: "Old Title"}) {
		t.Errorf("Unexpected tags: %+v", resp.Tags)
	}
}

func TestDownloadFileName(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Old Title", "Old Title.mp3"},
		{"", "tagged.mp3"},
		{"AC/DC", "AC_DC.mp3"},
		{`a\b`, "a_b.mp3"},
	}

	for _, test := range tests {
		if result := DownloadFileName(test.title); result != test.expected {
			t.Errorf("DownloadFileName(%q) = %q, expected %q", test.title, result, test.expected)
		}
	}
}

func TestDownloadFileName_LongTitle(t *testing.T) {
	ascii := DownloadFileName(strings.Repeat("a", 300))
	if base := strings.TrimSuffix(ascii, MP3Extension); len(base) != MaxDownloadNameBytes {
		t.Errorf("Expected a %d byte base name, got %d", MaxDownloadNameBytes, len(base))
	}

	// Two byte runes; 201 is not a rune boundary
	accented := DownloadFileName("x" + strings.Repeat("é", 200))
	if !utf8.ValidString(accented) {
		t.Errorf("Truncated name is not valid UTF-8: %q", accented)
	}
	if !strings.HasSuffix(accented, MP3Extension) {
		t.Errorf("Expected %s suffix, got %q", MP3Extension, accented)
	}
	if base := strings.TrimSuffix(accented, MP3Extension); len(base) > MaxDownloadNameBytes || len(base) < MaxDownloadNameBytes-1 {
		t.Errorf("Unexpected base name length %d", len(base))
	}

	short := strings.Repeat("b", MaxDownloadNameBytes)
	if result := DownloadFileName(short); result != short+MP3Extension {
		t.Errorf("Title at the limit must not be cut, got %q", result)
	}
}
