// Package timecode converts between decimal seconds and HH:MM:SS.mmm
// timestamp strings. Every component that renders or ingests clock times
// goes through this package so the two representations stay interchangeable.
package timecode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/barknet/barknet-go/internal/errors"
)

// Format identifies which representation a raw value carried.
type Format string

const (
	FormatSeconds   Format = "seconds"
	FormatTimestamp Format = "timestamp"
)

// Patterns are tried in order of specificity. The bare-seconds form requires
// exactly three fractional digits so it cannot be confused with a plain float.
var (
	hmsPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})(?:\.(\d{1,3}))?$`)
	msPattern  = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?:\.(\d{1,3}))?$`)
	sPattern   = regexp.MustCompile(`^(\d{1,2})\.(\d{3})$`)
)

// SecondsToTimestamp renders seconds as zero-padded HH:MM:SS.mmm.
// Milliseconds are truncated, not rounded. Hours beyond 24 are emitted
// as-is, there is no day rollover.
func SecondsToTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(math.Floor(seconds))
	millis := int(math.Floor((seconds - float64(whole)) * 1000))

	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

// TimestampToSeconds parses HH:MM:SS.mmm, MM:SS.mmm or SS.mmm into decimal
// seconds. Minutes and seconds must be at most 59 and hours at most 23;
// anything else is a timestamp-format error naming the offending input.
func TimestampToSeconds(timestamp string) (float64, error) {
	if m := hmsPattern.FindStringSubmatch(timestamp); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		seconds, _ := strconv.Atoi(m[3])
		if hours > 23 {
			return 0, errors.TimeFormatError(timestamp, "hours must be <= 23")
		}
		if minutes > 59 || seconds > 59 {
			return 0, errors.TimeFormatError(timestamp, "minutes and seconds must be <= 59")
		}
		return float64(hours*3600+minutes*60+seconds) + fractionSeconds(m[4]), nil
	}

	if m := msPattern.FindStringSubmatch(timestamp); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		if minutes > 59 || seconds > 59 {
			return 0, errors.TimeFormatError(timestamp, "minutes and seconds must be <= 59")
		}
		return float64(minutes*60+seconds) + fractionSeconds(m[3]), nil
	}

	if m := sPattern.FindStringSubmatch(timestamp); m != nil {
		seconds, _ := strconv.Atoi(m[1])
		if seconds > 59 {
			return 0, errors.TimeFormatError(timestamp, "seconds must be <= 59")
		}
		return float64(seconds) + fractionSeconds(m[2]), nil
	}

	return 0, errors.TimeFormatError(timestamp, "no known timestamp pattern matched")
}

// fractionSeconds converts a 1-3 digit fractional group, right-padded to
// milliseconds, into seconds.
func fractionSeconds(group string) float64 {
	if group == "" {
		return 0
	}
	padded := group + strings.Repeat("0", 3-len(group))
	millis, _ := strconv.Atoi(padded)
	return float64(millis) / 1000.0
}

// DetectFormat reports whether a raw value is decimal seconds or a
// formatted timestamp. Numeric values are always seconds. Strings are
// first tried as timestamps, then as plain floats.
func DetectFormat(value any) (Format, error) {
	switch v := value.(type) {
	case float64, float32, int, int64:
		return FormatSeconds, nil
	case string:
		if _, err := TimestampToSeconds(v); err == nil {
			return FormatTimestamp, nil
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return FormatSeconds, nil
		}
		return "", errors.TimeFormatError(v, "neither timestamp nor decimal seconds")
	default:
		return "", errors.Newf("unsupported time value type %T", value).
			Category(errors.CategoryTimeFormat).
			Build()
	}
}
