package shift

import (
	"regexp"
	"strconv"
)

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock converts an "HH:MM" 24-hour string to minutes after midnight.
func ParseClock(value string) (int, error) {
	m := clockRegex.FindStringSubmatch(value)
	if m == nil {
		return 0, &MalformedTimeError{Value: value}
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// FormatClock is the inverse of ParseClock for values inside one day.
func FormatClock(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	h, m := minutes/60, minutes%60
	return pad2(h) + ":" + pad2(m)
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
