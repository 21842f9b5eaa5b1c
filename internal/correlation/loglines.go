package correlation

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/barknet/barknet-go/internal/detection"
)

// Detection log line shape: `YYYY-MM-DD HH:MM:SS,mmm - LEVEL - message`.
// Bark detections additionally carry confidence and intensity in the
// message body.
var (
	logLinePattern = regexp.MustCompile(
		`^(\d{4}-\d{2}-\d{2}) (\d{2}):(\d{2}):(\d{2}),(\d{3}) - (\w+) - (.*)$`)
	barkPattern = regexp.MustCompile(
		`Confidence: ([0-9.]+), Intensity: ([0-9.]+)`)
)

// ParseLogLine extracts a bark detection from one log line. Lines that do
// not match the timestamp pattern are not events; lines with the
// timestamp but without the bark pattern are ordinary log lines. Both
// return ok=false with no error.
func ParseLogLine(line string, barkDuration float64) (AnnotatedEvent, bool) {
	m := logLinePattern.FindStringSubmatch(line)
	if m == nil {
		return AnnotatedEvent{}, false
	}

	bark := barkPattern.FindStringSubmatch(m[7])
	if bark == nil {
		return AnnotatedEvent{}, false
	}

	date, err := time.ParseInLocation("2006-01-02", m[1], time.Local)
	if err != nil {
		return AnnotatedEvent{}, false
	}

	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	seconds, _ := strconv.Atoi(m[4])
	millis, _ := strconv.Atoi(m[5])
	if hours > 23 || minutes > 59 || seconds > 59 {
		return AnnotatedEvent{}, false
	}

	confidence, err := strconv.ParseFloat(bark[1], 64)
	if err != nil {
		return AnnotatedEvent{}, false
	}
	intensity, err := strconv.ParseFloat(bark[2], 64)
	if err != nil {
		return AnnotatedEvent{}, false
	}

	secondsOfDay := float64(hours*3600+minutes*60+seconds) + float64(millis)/1000

	return AnnotatedEvent{
		Event: detection.Event{
			StartTime:  secondsOfDay,
			EndTime:    secondsOfDay + barkDuration,
			Confidence: confidence,
			Intensity:  intensity,
		},
		Timestamp: date.Add(time.Duration(secondsOfDay * float64(time.Second))),
	}, true
}

// ParseLog reads a whole detection log, skipping non-bark lines silently.
func ParseLog(r io.Reader, barkDuration float64) ([]AnnotatedEvent, error) {
	var events []AnnotatedEvent
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if event, ok := ParseLogLine(scanner.Text(), barkDuration); ok {
			events = append(events, event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
