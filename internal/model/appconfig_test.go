package model

import (
	"testing"
	"time"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.DefaultOptions != DefaultLaserCutOptions() {
		t.Errorf("default options mismatch: %+v", cfg.DefaultOptions)
	}
	if cfg.Laser != DefaultLaserSettings() {
		t.Errorf("laser settings mismatch: %+v", cfg.Laser)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
	if cfg.SaveDelay() != DefaultSaveDelay {
		t.Errorf("expected default save delay %v, got %v", DefaultSaveDelay, cfg.SaveDelay())
	}
}

func TestSaveDelay(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.SaveDelayMS = 500
	if cfg.SaveDelay() != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", cfg.SaveDelay())
	}
	cfg.SaveDelayMS = -5
	if cfg.SaveDelay() != 0 {
		t.Errorf("negative delay should clamp to 0, got %v", cfg.SaveDelay())
	}
}

func TestDarkMode(t *testing.T) {
	tests := []struct {
		theme        string
		dark, forced bool
	}{
		{"dark", true, true},
		{"light", false, true},
		{"system", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		cfg := AppConfig{Theme: tt.theme}
		dark, forced := cfg.DarkMode()
		if dark != tt.dark || forced != tt.forced {
			t.Errorf("theme %q: got (%v, %v), want (%v, %v)", tt.theme, dark, forced, tt.dark, tt.forced)
		}
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a")
	cfg.AddRecentJob("b")
	cfg.AddRecentJob("a")

	if len(cfg.RecentJobs) != 2 || cfg.RecentJobs[0] != "a" || cfg.RecentJobs[1] != "b" {
		t.Errorf("unexpected recent jobs %v", cfg.RecentJobs)
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentJob(string(rune('c' + i)))
	}
	if len(cfg.RecentJobs) != maxRecentJobs {
		t.Errorf("expected %d recent jobs, got %d", maxRecentJobs, len(cfg.RecentJobs))
	}
}

func TestGetLaserProfile(t *testing.T) {
	if p := GetLaserProfile("Grbl Laser"); p.LaserOn != "M4 S%d" {
		t.Errorf("expected dynamic power for Grbl Laser, got %q", p.LaserOn)
	}
	if p := GetLaserProfile("NonExistent"); p.Name != "Generic" {
		t.Errorf("expected Generic fallback, got %s", p.Name)
	}
	if len(GetLaserProfileNames()) != len(LaserProfiles) {
		t.Error("profile names should match profiles")
	}
	if GetLaserProfile(DefaultLaserSettings().Profile).Name != DefaultLaserSettings().Profile {
		t.Error("default settings should reference a built-in profile")
	}
}
