package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconPaste    = "📋"
	IconClose    = "×"
	IconError    = "❌"
	IconDone     = "✔"
	IconPending  = "…"
	IconWorking  = "⟳"
)

// Text fragments
const (
	DashPlaceholder = "—"
)

// Layout sizing
const (
	StatusLabelWidth float32 = 96
	SettingsWidth    float32 = 500
	SettingsHeight   float32 = 420
	LogoSize         float32 = 32
)
