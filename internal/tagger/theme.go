package tagger

import (
	"sync"

	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/model"
)

// ThemeStore persists the theme preference
type ThemeStore interface {
	GetTheme() model.Theme
	SetTheme(model.Theme)
}

// ThemeController holds the light/dark preference. The stored value is read
// once at construction; every change is applied and written back.
type ThemeController struct {
	store ThemeStore
	apply func(model.Theme)

	mu    sync.Mutex
	theme model.Theme
}

// NewThemeController loads the stored theme and applies it immediately
func NewThemeController(store ThemeStore, apply func(model.Theme)) *ThemeController {
	tc := &ThemeController{
		store: store,
		apply: apply,
		theme: model.ParseTheme(string(store.GetTheme())),
	}
	tc.commit(tc.theme)
	return tc
}

// Theme returns the current theme
func (tc *ThemeController) Theme() model.Theme {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.theme
}

// Toggle switches between light and dark and returns the new theme
func (tc *ThemeController) Toggle() model.Theme {
	tc.mu.Lock()
	next := tc.theme.Toggle()
	tc.theme = next
	tc.mu.Unlock()

	tc.commit(next)
	return next
}

// Set selects a theme explicitly
func (tc *ThemeController) Set(theme model.Theme) {
	theme = model.ParseTheme(string(theme))

	tc.mu.Lock()
	tc.theme = theme
	tc.mu.Unlock()

	tc.commit(theme)
}

func (tc *ThemeController) commit(theme model.Theme) {
	if tc.apply != nil {
		tc.apply(theme)
	}
	tc.store.SetTheme(theme)
	logger.Debug("Theme applied", logger.String("theme", theme.String()))
}
