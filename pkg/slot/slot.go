// Package slot computes the canonical bookable time labels for a resource's
// working window. All functions are pure; the grid for a given config is
// deterministic and finite.
package slot

import (
	"fmt"
	"regexp"

	"bookcal/pkg/model"
)

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ParseClock converts a zero-padded 24h "HH:MM" label to minutes since
// midnight. Returns false for anything that is not a well-formed label.
func ParseClock(s string) (int, bool) {
	if !clockRegex.MatchString(s) {
		return 0, false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m, true
}

// FormatClock renders minutes since midnight as a zero-padded "HH:MM" label.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Generate returns the ordered slot labels for the half-open window
// [startTime, endTime): one label every duration minutes starting at
// startTime, while the slot begins before endTime. The end label itself is
// never emitted, and no partial slot is produced when duration does not
// divide the window evenly.
//
// Malformed inputs or a non-positive duration yield an empty grid.
func Generate(startTime, endTime string, duration int) []string {
	start, ok := ParseClock(startTime)
	if !ok {
		return nil
	}
	end, ok := ParseClock(endTime)
	if !ok {
		return nil
	}
	if duration <= 0 || start >= end {
		return nil
	}

	slots := make([]string, 0, (end-start)/duration)
	for t := start; t < end; t += duration {
		slots = append(slots, FormatClock(t))
	}
	return slots
}

// GenerateFor is Generate applied to a resource's booking config.
func GenerateFor(cfg model.BookingConfig) []string {
	return Generate(cfg.StartTime, cfg.EndTime, cfg.Duration)
}

// IsValid reports whether t is a bookable slot label under cfg: well-formed
// "HH:MM", within [StartTime, EndTime), and aligned to the slot duration.
// This predicate is the authoritative membership test for the grid produced
// by Generate.
func IsValid(t string, cfg model.BookingConfig) bool {
	minutes, ok := ParseClock(t)
	if !ok {
		return false
	}
	start, ok := ParseClock(cfg.StartTime)
	if !ok {
		return false
	}
	end, ok := ParseClock(cfg.EndTime)
	if !ok {
		return false
	}
	if cfg.Duration <= 0 {
		return false
	}
	if minutes < start || minutes >= end {
		return false
	}
	return (minutes-start)%cfg.Duration == 0
}
