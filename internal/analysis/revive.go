package analysis

import (
	"time"

	"github.com/barknet/barknet-go/internal/detection"
	"github.com/barknet/barknet-go/internal/timecode"
)

// clock layouts seen in persisted records and legacy logs
var reviveLayouts = []string{
	"15:04:05.000",
	"15:04:05,000",
	"15:04:05",
	"2006-01-02 15:04:05",
}

// parseClockString resolves a persisted clock string to seconds of day,
// trying the timecode patterns first and legacy time layouts after.
func parseClockString(value string) (float64, bool) {
	if secs, err := timecode.TimestampToSeconds(value); err == nil {
		return secs, true
	}
	for _, layout := range reviveLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return float64(t.Hour()*3600+t.Minute()*60+t.Second()) +
				float64(t.Nanosecond())/1e9, true
		}
	}
	return 0, false
}

// Revive restores the internal second values of violations that
// round-tripped through string storage. A violation whose start or end
// parses under no known format is skipped with a warning; it never aborts
// the batch. The second return value is the number skipped.
func Revive(stored []detection.Violation) ([]detection.Violation, int) {
	revived := make([]detection.Violation, 0, len(stored))
	skipped := 0

	for _, v := range stored {
		start, okStart := parseClockString(v.StartTime)
		end, okEnd := parseClockString(v.EndTime)
		if !okStart || !okEnd {
			skipped++
			logger.Warn("skipping violation with unparseable timestamps",
				"date", v.Date,
				"start", v.StartTime,
				"end", v.EndTime)
			continue
		}
		v.StartSeconds = start
		v.EndSeconds = end
		revived = append(revived, v)
	}

	return revived, skipped
}
