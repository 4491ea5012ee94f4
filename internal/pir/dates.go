package pir

import (
	"strconv"
	"strings"
	"time"
)

// Layouts tried before falling back to the slash form. The sheet backend
// hands back anything from bare calendar dates to full timestamps.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC822,
}

// NormalizeDate reduces an arbitrary date string to "YYYY-MM-DD".
//
// Parsing is attempted against the known calendar layouts first; if all
// fail, a DD/MM/YYYY interpretation is tried. Unparseable input yields ""
// so garbage never reaches storage. No time-zone conversion is applied:
// the calendar date is taken exactly as written.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d.Format("2006-01-02")
		}
	}

	return normalizeSlashDate(value)
}

// normalizeSlashDate interprets DD/MM/YYYY. Returns "" for anything that
// is not three plausible numeric parts.
func normalizeSlashDate(value string) string {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return ""
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || day < 1 || day > 31 {
		return ""
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || month < 1 || month > 12 {
		return ""
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || year < 1000 || year > 9999 {
		return ""
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Format("2006-01-02")
}
