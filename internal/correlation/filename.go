// Package correlation attributes detection timestamps to the audio
// recordings that captured them, and parses the detection log format the
// monitor writes.
package correlation

import (
	"regexp"
	"time"
)

// DefaultPrefix is the recorder's filename convention prefix.
const DefaultPrefix = "bark_recording"

var recordingNamePattern = regexp.MustCompile(`^(.+)_(\d{8})_(\d{6})\.wav$`)

// ParseRecordingStart extracts the recording start time encoded in a
// filename of the form <prefix>_YYYYMMDD_HHMMSS.wav. Any deviation --
// wrong digit counts, invalid calendar values, wrong extension -- yields
// ok=false, never a panic.
func ParseRecordingStart(filename, prefix string) (time.Time, bool) {
	m := recordingNamePattern.FindStringSubmatch(filename)
	if m == nil || m[1] != prefix {
		return time.Time{}, false
	}

	start, err := time.ParseInLocation("20060102_150405", m[2]+"_"+m[3], time.Local)
	if err != nil {
		// digits matched but the calendar values did not, e.g. month 13
		return time.Time{}, false
	}
	return start, true
}
