package ui

import (
	"os"
	"testing"
)

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if GetCurrentTheme().Name != "none" || ColorRed() != "" || ColorReset() != "" {
		t.Error("--no-color should disable every color")
	}
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("no-color should select the no-color monitor palette")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name string
		want Theme
	}{
		{"dark", DarkTheme},
		{"light", LightTheme},
		{"none", NoColorTheme},
		{"unknown", DarkTheme},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme(); got != tt.want {
			t.Errorf("SetTheme(%q) = %q, want %q", tt.name, got.Name, tt.want.Name)
		}
	}

	SetTheme("dark")
	if ColorGreen() != DarkTheme.Success || ColorBold() != "\033[1m" {
		t.Error("color accessors should follow the active theme")
	}
}

func TestInitTheme_FromEnv(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	tests := []struct {
		env     string
		want    Theme
		wantTUI TUITheme
	}{
		{"light", LightTheme, LightTUITheme},
		{" Light ", LightTheme, LightTUITheme},
		{"none", NoColorTheme, NoColorTUITheme},
		{"", DarkTheme, DarkTUITheme},
		{"solarized", DarkTheme, DarkTUITheme},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(ThemeEnv, tt.env)
			InitTheme(false)
			if got := GetCurrentTheme(); got != tt.want {
				t.Errorf("theme = %q, want %q", got.Name, tt.want.Name)
			}
			if GetCurrentTUITheme() != tt.wantTUI {
				t.Error("monitor palette does not match the theme")
			}
		})
	}

	t.Run("no-color wins", func(t *testing.T) {
		t.Setenv(ThemeEnv, "light")
		InitTheme(true)
		if GetCurrentTheme().Name != "none" {
			t.Errorf("theme = %q, want none", GetCurrentTheme().Name)
		}
	})
}

func TestSetCurrentTheme_Custom(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	custom := Theme{Name: "custom", Primary: "\033[35m"}
	SetCurrentTheme(custom)
	if ColorBlue() != "\033[35m" {
		t.Errorf("ColorBlue() = %q", ColorBlue())
	}
	if GetCurrentTUITheme() != DarkTUITheme {
		t.Error("an unregistered theme should keep the dark monitor palette")
	}
}
