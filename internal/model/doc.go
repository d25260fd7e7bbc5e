package model

// Package model defines domain data structures shared across the app: the
// editable tag set, API payloads, cover art, session state and theme enums.
// Structures are plain values designed for direct binding in the UI.
