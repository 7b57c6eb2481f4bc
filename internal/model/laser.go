package model

// LaserSettings holds the machine parameters used for gcode export.
type LaserSettings struct {
	Profile       string  `json:"profile"`        // Name of the LaserProfile to use
	CutPower      int     `json:"cut_power"`      // S value for cut moves
	CutFeed       float64 `json:"cut_feed"`       // mm/min
	CutPasses     int     `json:"cut_passes"`     // Repeats of every cut path
	EngravePower  int     `json:"engrave_power"`  // S value for engrave moves
	EngraveFeed   float64 `json:"engrave_feed"`   // mm/min
	RapidFeed     float64 `json:"rapid_feed"`     // Used only for time estimates
	CurveSegments int     `json:"curve_segments"` // Polyline segments per full circle / curve
}

// DefaultLaserSettings returns conservative settings for a 10W diode laser
// cutting 3mm hardwood.
func DefaultLaserSettings() LaserSettings {
	return LaserSettings{
		Profile:       "Grbl Laser",
		CutPower:      1000,
		CutFeed:       300,
		CutPasses:     3,
		EngravePower:  300,
		EngraveFeed:   1500,
		RapidFeed:     3000,
		CurveSegments: 32,
	}
}

// LaserProfile defines a post-processor configuration for a laser controller.
type LaserProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	StartCode []string `json:"start_code"` // Commands at start of file
	LaserOn   string   `json:"laser_on"`   // Format with power, e.g. "M4 S%d"
	LaserOff  string   `json:"laser_off"`  // Laser off command
	RapidMove string   `json:"rapid_move"` // G0 or equivalent
	FeedMove  string   `json:"feed_move"`  // G1 or equivalent
	EndCode   []string `json:"end_code"`   // Commands at end of file

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`
	DecimalPlaces int    `json:"decimal_places"`
}

// Built-in laser profiles.
var LaserProfiles = []LaserProfile{
	{
		Name:          "Grbl Laser",
		Description:   "Grbl 1.1 laser mode with dynamic power (M4)",
		StartCode:     []string{"G90", "G21", "G17", "G94", "$32=1"},
		LaserOn:       "M4 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Grbl Constant",
		Description:   "Grbl 1.1 laser mode with constant power (M3)",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Marlin",
		Description:   "Marlin firmware with LASER_FEATURE",
		StartCode:     []string{"G90", "G21"},
		LaserOn:       "M3 S%d I",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0"},
		CommentPrefix: ";",
		DecimalPlaces: 2,
	},
	{
		Name:          "Generic",
		Description:   "Generic laser GCode",
		StartCode:     []string{"G90", "G21"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetLaserProfile returns a profile by name, or the Generic profile if not found.
func GetLaserProfile(name string) LaserProfile {
	for _, p := range LaserProfiles {
		if p.Name == name {
			return p
		}
	}
	return LaserProfiles[len(LaserProfiles)-1] // Generic is last
}

// GetLaserProfileNames returns the names of all built-in profiles.
func GetLaserProfileNames() []string {
	names := make([]string, 0, len(LaserProfiles))
	for _, p := range LaserProfiles {
		names = append(names, p.Name)
	}
	return names
}
