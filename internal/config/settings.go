package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/mp3-tagger/internal/model"
	"github.com/ytget/mp3-tagger/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyTheme       = "theme"
	KeyServerURL   = "server_url"
	KeyDownloadDir = "download_directory"
	KeyLanguage    = "app_language"
)

// Default values
const (
	DefaultTheme    = model.ThemeLight
	DefaultLanguage = "system"
)

// Settings manages persistent user preferences
type Settings struct {
	app               fyne.App
	fallbackServerURL string
}

// NewSettings creates a new settings manager. fallbackServerURL is used while
// the user has not stored a server URL; an empty value means DefaultServerURL.
func NewSettings(app fyne.App, fallbackServerURL string) *Settings {
	if fallbackServerURL == "" {
		fallbackServerURL = DefaultServerURL
	}
	return &Settings{app: app, fallbackServerURL: fallbackServerURL}
}

// GetTheme returns the persisted theme, light when nothing is stored
func (s *Settings) GetTheme() model.Theme {
	return model.ParseTheme(s.app.Preferences().StringWithFallback(KeyTheme, string(DefaultTheme)))
}

// SetTheme persists the theme
func (s *Settings) SetTheme(theme model.Theme) {
	s.app.Preferences().SetString(KeyTheme, string(model.ParseTheme(string(theme))))
}

// GetServerURL returns the backend base URL without a trailing slash
func (s *Settings) GetServerURL() string {
	url := strings.TrimSpace(s.app.Preferences().String(KeyServerURL))
	if url == "" {
		url = s.fallbackServerURL
	}
	return strings.TrimRight(url, "/")
}

// SetServerURL stores the backend base URL; an empty value restores the fallback
func (s *Settings) SetServerURL(url string) {
	s.app.Preferences().SetString(KeyServerURL, strings.TrimSpace(url))
}

// GetDownloadDirectory returns the directory tagged files are saved to
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
