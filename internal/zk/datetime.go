package zk

import (
	"log/slog"
	"time"
)

// displayLayout is the fixed MM/DD/YY HH:MM:SS display format.
const displayLayout = "01/02/06 15:04:05"

// datetimeLayouts are tried in order when parsing server timestamps.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDatetime renders an ISO-8601 timestamp in local time for display.
// An empty value is returned unchanged. An unparseable value is logged as
// a diagnostic and returned unchanged; this function never fails.
func FormatDatetime(value string) string {
	if value == "" {
		return value
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Local().Format(displayLayout)
		}
	}
	slog.Warn("zk: unparseable datetime", slog.String("value", value))
	return value
}
