package correlation

import (
	"os"
	"time"

	"github.com/go-audio/wav"
	"github.com/patrickmn/go-cache"

	"github.com/barknet/barknet-go/internal/errors"
	"github.com/barknet/barknet-go/internal/logging"
)

// DurationProber reads actual recording durations from WAV headers,
// falling back to a configured estimate when a file cannot be decoded.
// Duration is only a correlation heuristic, so an unreadable file is a
// warning, never an error. Results are cached per path for the run.
type DurationProber struct {
	fallback float64
	cache    *cache.Cache
}

// NewDurationProber creates a prober with the given fallback duration in
// seconds.
func NewDurationProber(fallbackSeconds float64) *DurationProber {
	return &DurationProber{
		fallback: fallbackSeconds,
		cache:    cache.New(30*time.Minute, 10*time.Minute),
	}
}

// Duration returns the recording's length in seconds, preferring the real
// decoded value over the fallback.
func (p *DurationProber) Duration(path string) float64 {
	if cached, found := p.cache.Get(path); found {
		return cached.(float64)
	}

	duration, err := p.probe(path)
	if err != nil {
		logging.Warn("could not probe recording duration, using fallback",
			"file", path,
			"fallback_seconds", p.fallback,
			"error", err)
		duration = p.fallback
	}

	p.cache.Set(path, duration, cache.DefaultExpiration)
	return duration
}

// probe decodes the WAV header and derives duration from the sample
// count.
func (p *DurationProber) probe(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.New(err).Category(errors.CategoryAudio).FileContext(path).Build()
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return 0, errors.Newf("invalid WAV file format").
			Category(errors.CategoryAudio).
			FileContext(path).
			Build()
	}

	if decoder.SampleRate == 0 || decoder.BitDepth == 0 || decoder.NumChans == 0 {
		return 0, errors.Newf("WAV header missing format information").
			Category(errors.CategoryAudio).
			FileContext(path).
			Build()
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return 0, errors.New(err).Category(errors.CategoryAudio).FileContext(path).Build()
	}

	bytesPerSample := int64(decoder.BitDepth / 8)
	totalSamples := fileInfo.Size() / bytesPerSample / int64(decoder.NumChans)
	return float64(totalSamples) / float64(decoder.SampleRate), nil
}
