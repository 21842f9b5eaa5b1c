package timecode

import (
	"encoding/json"
	"strconv"

	"github.com/barknet/barknet-go/internal/errors"
)

// TimeValue is a tagged union carrying either decimal seconds or a
// formatted timestamp string. Inputs arrive in both shapes; the union is
// normalized to float seconds at the boundary and never carried further in.
type TimeValue struct {
	seconds   float64
	formatted string
	isString  bool
}

// Seconds wraps a decimal-seconds value.
func Seconds(s float64) TimeValue {
	return TimeValue{seconds: s}
}

// Formatted wraps a HH:MM:SS.mmm style value.
func Formatted(ts string) TimeValue {
	return TimeValue{formatted: ts, isString: true}
}

// Normalize resolves the union to decimal seconds.
func (tv TimeValue) Normalize() (float64, error) {
	if !tv.isString {
		return tv.seconds, nil
	}
	if secs, err := TimestampToSeconds(tv.formatted); err == nil {
		return secs, nil
	}
	if secs, err := strconv.ParseFloat(tv.formatted, 64); err == nil {
		return secs, nil
	}
	return 0, errors.TimeFormatError(tv.formatted, "neither timestamp nor decimal seconds")
}

// UnmarshalJSON accepts either a JSON number or a string.
func (tv *TimeValue) UnmarshalJSON(data []byte) error {
	var asFloat float64
	if err := json.Unmarshal(data, &asFloat); err == nil {
		*tv = Seconds(asFloat)
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*tv = Formatted(asString)
		return nil
	}
	return errors.Newf("time value must be a number or a string: %s", string(data)).
		Category(errors.CategoryTimeFormat).
		Build()
}

// MarshalJSON writes the canonical string form.
func (tv TimeValue) MarshalJSON() ([]byte, error) {
	secs, err := tv.Normalize()
	if err != nil {
		return nil, err
	}
	return json.Marshal(SecondsToTimestamp(secs))
}
