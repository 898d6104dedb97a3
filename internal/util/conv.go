package util

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MustParseUint converts a string to an unsigned integer, returning 0 on failure.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

var elapsedPattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})$`)

// ParseElapsed parses a fixed "HH:MM:SS" duration as reported by clients.
func ParseElapsed(s string) (time.Duration, error) {
	m := elapsedPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, Validationf("invalid elapsed time %q, expected HH:MM:SS", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	if minutes > 59 || seconds > 59 {
		return 0, Validationf("invalid elapsed time %q, minutes and seconds must be below 60", s)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, nil
}

// FormatElapsed renders a second count back into the wire "HH:MM:SS" form.
func FormatElapsed(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
