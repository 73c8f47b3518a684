package ui

import "testing"

// TestSetTheme verifies name-based selection and the unknown-name fallback.
func TestSetTheme(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"solarized", "dark"},
		{"", "dark"},
	}
	for _, tt := range tests {
		t.Run("name "+tt.name, func(t *testing.T) {
			SetTheme(tt.name)
			if got := GetCurrentTheme().Name; got != tt.want {
				t.Errorf("SetTheme(%q) activated %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

// TestInitTheme verifies the flag and NO_COLOR environment interplay.
func TestInitTheme(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	t.Run("flag disables colors", func(t *testing.T) {
		InitTheme(true)
		if GetCurrentTheme().Name != "none" {
			t.Error("InitTheme(true) should disable colors")
		}
	})

	t.Run("NO_COLOR disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		InitTheme(false)
		if GetCurrentTheme().Name != "none" {
			t.Error("InitTheme should honor NO_COLOR")
		}
	})
}

// TestGetCurrentTUITheme verifies the TUI palette follows the CLI theme.
func TestGetCurrentTUITheme(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	SetCurrentTheme(NoColorTheme)
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("none theme should select NoColorTUITheme")
	}

	SetCurrentTheme(DarkTheme)
	if GetCurrentTUITheme() != DarkTUITheme {
		t.Error("dark theme should select DarkTUITheme")
	}
}

// TestNoColorTheme_EmptyCodes pins down that the none theme emits no
// escape sequences at all.
func TestNoColorTheme_EmptyCodes(t *testing.T) {
	th := NoColorTheme
	for name, code := range map[string]string{
		"Primary": th.Primary, "Secondary": th.Secondary,
		"Success": th.Success, "Warning": th.Warning,
		"Error": th.Error, "Info": th.Info,
		"Bold": th.Bold, "Reset": th.Reset,
	} {
		if code != "" {
			t.Errorf("NoColorTheme.%s = %q, want empty", name, code)
		}
	}
}
