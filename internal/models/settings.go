package models

// Themes lists the presentation themes a client may select.
var Themes = []string{"light", "dark", "high-contrast", "midnight", "neon"}

// Settings holds user preferences stored alongside the workout log.
type Settings struct {
	Units              string `json:"units"`
	DefaultRestSeconds int    `json:"default_rest_seconds"`
	Theme              string `json:"theme"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		Units:              "lbs",
		DefaultRestSeconds: 60,
		Theme:              "light",
	}
}

// SanitizeTheme returns theme if it is known, otherwise "light".
func SanitizeTheme(theme string) string {
	for _, t := range Themes {
		if t == theme {
			return theme
		}
	}
	return "light"
}
