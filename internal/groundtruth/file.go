package groundtruth

import (
	"encoding/json"
	"os"

	"github.com/barknet/barknet-go/internal/errors"
)

// FormatVersion is the ground-truth file version this build writes.
const FormatVersion = "1.0"

// File is an annotated recording: the audio file it describes, its known
// duration and the labeled bark events.
type File struct {
	AudioFile     string  `json:"audio_file"`
	Duration      float64 `json:"duration"`
	Events        []Event `json:"events"`
	FormatVersion string  `json:"format_version"`
}

// Load reads and validates a ground-truth file. A single invalid event
// fails the load; use Repair for lenient ingestion.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("ground truth file %s not found", path)
		}
		return nil, errors.New(err).Category(errors.CategoryFileIO).FileContext(path).Build()
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.New(err).Category(errors.CategoryFileParsing).FileContext(path).Build()
	}
	return &file, nil
}

// Save writes the file in canonical form, string timestamps and current
// format version.
func (f *File) Save(path string) error {
	f.FormatVersion = FormatVersion

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.New(err).Category(errors.CategoryFileIO).Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(err).Category(errors.CategoryFileIO).FileContext(path).Build()
	}
	return nil
}

// ReferenceTimes returns the event start times for match scoring.
func (f *File) ReferenceTimes() []float64 {
	times := make([]float64, 0, len(f.Events))
	for _, e := range f.Events {
		times = append(times, e.StartSeconds())
	}
	return times
}
