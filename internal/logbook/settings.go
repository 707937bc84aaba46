package logbook

import (
	"context"
	"errors"
	"strings"

	"github.com/claude/repshape/internal/models"
)

// ErrInvalidSettings rejects an unknown weight unit.
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsPatch changes only the fields that are set.
type SettingsPatch struct {
	Units              *string `json:"units,omitempty"`
	DefaultRestSeconds *int    `json:"default_rest_seconds,omitempty"`
	Theme              *string `json:"theme,omitempty"`
}

// Settings returns the current settings.
func (l *Logbook) Settings() models.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data.Settings
}

// UpdateSettings applies p. Unknown themes fall back to light and negative
// rest times to zero.
func (l *Logbook) UpdateSettings(ctx context.Context, p SettingsPatch) (models.Settings, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.data.Settings
	if p.Units != nil {
		units := strings.ToLower(strings.TrimSpace(*p.Units))
		if units != "lbs" && units != "kg" {
			return s, ErrInvalidSettings
		}
		s.Units = units
	}
	if p.DefaultRestSeconds != nil {
		s.DefaultRestSeconds = max(0, *p.DefaultRestSeconds)
	}
	if p.Theme != nil {
		s.Theme = models.SanitizeTheme(strings.TrimSpace(*p.Theme))
	}

	d := l.data
	d.Settings = s
	if err := l.saveData(ctx, d); err != nil {
		return l.data.Settings, err
	}
	return s, nil
}
