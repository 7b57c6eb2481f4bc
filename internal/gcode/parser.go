package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MoveType represents the type of laser head movement.
type MoveType int

const (
	MoveRapid  MoveType = iota // G0: positioning with the beam off
	MoveBurn                   // G1 with the laser on and non-zero power
	MoveTravel                 // G1 with the laser off
)

// GCodeMove represents a single parsed movement from GCode.
type GCodeMove struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	ToX      float64
	ToY      float64
	FeedRate float64
	Power    int
}

// Length returns the XY distance covered by the move.
func (m GCodeMove) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var wordRe = regexp.MustCompile(`([XYFS])(-?\d+\.?\d*)`)

// ParseGCode parses a GCode string into a slice of structured moves. It
// tracks absolute position, feed rate and laser state (M3/M4 on, M5 off)
// and classifies each G0/G1 command accordingly.
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove

	curX, curY, curFeed := 0.0, 0.0, 0.0
	power := 0
	laserOn := false

	for _, line := range strings.Split(code, "\n") {
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		if idx := strings.Index(line, "("); idx >= 0 {
			if end := strings.Index(line, ")"); end > idx {
				line = line[:idx] + line[end+1:]
			}
		}
		upper := strings.ToUpper(strings.TrimSpace(line))
		if upper == "" {
			continue
		}

		fields := strings.Fields(upper)
		switch fields[0] {
		case "M3", "M03", "M4", "M04":
			laserOn = true
			if s, ok := word(upper, "S"); ok {
				power = int(s)
			}
			continue
		case "M5", "M05":
			laserOn = false
			continue
		case "G0", "G00", "G1", "G01":
		default:
			continue
		}
		isRapid := fields[0] == "G0" || fields[0] == "G00"

		newX, newY, newFeed := curX, curY, curFeed
		for _, m := range wordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "F":
				newFeed = val
			case "S":
				power = int(val)
			}
		}

		moveType := MoveTravel
		switch {
		case isRapid:
			moveType = MoveRapid
		case laserOn && power > 0:
			moveType = MoveBurn
		}

		moves = append(moves, GCodeMove{
			Type:     moveType,
			FromX:    curX,
			FromY:    curY,
			ToX:      newX,
			ToY:      newY,
			FeedRate: newFeed,
			Power:    power,
		})
		curX, curY, curFeed = newX, newY, newFeed
	}

	return moves
}

func word(line, letter string) (float64, bool) {
	for _, m := range wordRe.FindAllStringSubmatch(line, -1) {
		if m[1] == letter {
			v, err := strconv.ParseFloat(m[2], 64)
			return v, err == nil
		}
	}
	return 0, false
}

// Summary aggregates a parsed program.
type Summary struct {
	Moves        int
	Burns        int
	BurnLength   float64 // mm with the beam on
	TravelLength float64 // mm with the beam off
	// Bounds of burn moves in machine coordinates.
	MinX, MinY, MaxX, MaxY float64
	Duration               time.Duration
}

// Summarize computes burn length, burn bounds and an estimated run time.
// Rapids are timed at rapidFeed mm/min; feed moves without a feed rate are
// not timed.
func Summarize(moves []GCodeMove, rapidFeed float64) Summary {
	s := Summary{Moves: len(moves)}
	first := true
	var minutes float64

	for _, m := range moves {
		l := m.Length()
		switch m.Type {
		case MoveBurn:
			s.Burns++
			s.BurnLength += l
			if first {
				s.MinX, s.MaxX = m.FromX, m.FromX
				s.MinY, s.MaxY = m.FromY, m.FromY
				first = false
			}
			s.MinX = math.Min(s.MinX, math.Min(m.FromX, m.ToX))
			s.MaxX = math.Max(s.MaxX, math.Max(m.FromX, m.ToX))
			s.MinY = math.Min(s.MinY, math.Min(m.FromY, m.ToY))
			s.MaxY = math.Max(s.MaxY, math.Max(m.FromY, m.ToY))
		default:
			s.TravelLength += l
		}

		feed := m.FeedRate
		if m.Type == MoveRapid {
			feed = rapidFeed
		}
		if feed > 0 {
			minutes += l / feed
		}
	}

	s.Duration = time.Duration(minutes * float64(time.Minute))
	return s
}
