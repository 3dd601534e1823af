package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconError    = "❌"
	IconDone     = "✔"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	WindowWidth  float32 = 820
	WindowHeight float32 = 600

	StatusLabelWidth  float32 = 84
	PercentLabelWidth float32 = 48

	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 420
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
