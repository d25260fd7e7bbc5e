package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconMusic    = "🎵"
	IconFolder   = "📁"
	IconImage    = "🖼"
	IconMoon     = "🌙"
	IconSun      = "☀"
)

// Window sizing
const (
	WindowWidth  float32 = 560
	WindowHeight float32 = 520
)

// Layout sizing
const (
	DropAreaMinHeight float32 = 220
	DropIconSize      float32 = 36
	SettingsWidth     float32 = 500
	SettingsHeight    float32 = 320
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 90
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// CoverExtensions lists the image types offered by the cover picker
var CoverExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
