package analysis

import (
	"github.com/barknet/barknet-go/internal/detection"
)

// BuildSessions groups a chronologically sorted event stream into barking
// sessions. A session ends when the gap between one event's end and the
// next event's start exceeds gapThreshold; a gap exactly at the threshold
// stays within the session. Behavior on unsorted input is undefined, the
// caller sorts. Empty input yields empty output.
func BuildSessions(events []detection.Event, gapThreshold float64) []detection.Session {
	if len(events) == 0 {
		return nil
	}

	var sessions []detection.Session
	group := []detection.Event{events[0]}

	for _, event := range events[1:] {
		gap := event.StartTime - group[len(group)-1].EndTime
		if gap <= gapThreshold {
			group = append(group, event)
			continue
		}
		sessions = append(sessions, detection.NewSession(group))
		group = []detection.Event{event}
	}

	// trailing group is always finalized
	return append(sessions, detection.NewSession(group))
}
