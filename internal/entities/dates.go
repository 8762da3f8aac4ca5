package entities

import (
	"fmt"
	"time"
)

// fallbackDate is what FormatDate degrades to when a timestamp cannot be
// parsed. A single malformed date must not abort an otherwise valid export.
const fallbackDate = "Thursday, 1 January 1970 00:00:00"

// Timestamp layouts observed in device databases: with and without the
// millisecond suffix.
var dateLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// FormatDate renders a device timestamp as e.g.
// "Friday, 19 December 2014 19:54:11".
func FormatDate(value string) string {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return fmt.Sprintf("%s, %d %s %d %02d:%02d:%02d",
			t.Weekday(), t.Day(), t.Month(), t.Year(),
			t.Hour(), t.Minute(), t.Second())
	}
	return fallbackDate
}
