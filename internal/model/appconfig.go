package model

import "time"

// DefaultSaveDelay spaces consecutive writes so file watchers and laser
// software importing the output directory see one file at a time.
const DefaultSaveDelay = 500 * time.Millisecond

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Options applied to new jobs
	DefaultOptions LaserCutOptions `json:"default_options"`
	Laser          LaserSettings   `json:"laser"`

	// Output
	OutputDir    string `json:"output_dir"`
	SaveDelayMS  int    `json:"save_delay_ms"` // pause between consecutive file writes
	ExportDXF    bool   `json:"export_dxf"`
	ExportGCode  bool   `json:"export_gcode"`
	ExportPDF    bool   `json:"export_pdf"`
	ExportBOM    bool   `json:"export_bom"`
	CheckOutputs bool   `json:"check_outputs"` // verify bounds before writing

	// Application preferences
	RecentJobs []string `json:"recent_jobs"`
	Theme      string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultOptions: DefaultLaserCutOptions(),
		Laser:          DefaultLaserSettings(),
		OutputDir:      "laser-files",
		SaveDelayMS:    int(DefaultSaveDelay / time.Millisecond),
		CheckOutputs:   true,
		RecentJobs:     []string{},
		Theme:          "system",
	}
}

// SaveDelay returns the configured pause between file writes.
func (c AppConfig) SaveDelay() time.Duration {
	if c.SaveDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.SaveDelayMS) * time.Millisecond
}

// DarkMode reports whether the configured theme forces the dark variant.
// The boolean second result is false when the system setting should be used.
func (c AppConfig) DarkMode() (dark, forced bool) {
	switch c.Theme {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

// maxRecentJobs bounds the RecentJobs list.
const maxRecentJobs = 10

// AddRecentJob moves id to the front of RecentJobs, dropping duplicates and
// the oldest entries beyond the limit.
func (c *AppConfig) AddRecentJob(id string) {
	recent := []string{id}
	for _, r := range c.RecentJobs {
		if r != id {
			recent = append(recent, r)
		}
	}
	if len(recent) > maxRecentJobs {
		recent = recent[:maxRecentJobs]
	}
	c.RecentJobs = recent
}
