package model

// SessionState is the page-level state: either no active file or one file being edited
type SessionState int

const (
	// SessionIdle means no file is active; the upload control is shown
	SessionIdle SessionState = iota

	// SessionEditing means a file identifier is active; the tag form is shown
	SessionEditing
)

// String returns the string representation of SessionState
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "Idle"
	case SessionEditing:
		return "Editing"
	default:
		return "Unknown"
	}
}

// Theme is the two-valued colour preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme converts a stored value to a Theme. Anything other than "dark" is light.
func ParseTheme(value string) Theme {
	if Theme(value) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// IsDark returns true for the dark theme
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// String returns the string representation of Theme
func (t Theme) String() string {
	return string(t)
}
