// Package ui contains the Fyne-based desktop user interface for the application.
// It switches between the upload panel and the tag form as the session
// controller changes state, and renders notifications, theme and settings.
// All UI strings are localized via Localization.
package ui
