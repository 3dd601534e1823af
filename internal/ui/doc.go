// Package ui contains the Fyne-based desktop user interface. It collects a
// tuning request, runs the tuner on a background goroutine and renders one
// row per conversion job. All UI strings are localized via Localization.
package ui
