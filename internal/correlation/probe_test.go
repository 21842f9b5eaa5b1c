package correlation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestWAV writes a mono 16-bit WAV holding the given number of
// samples at 44.1 kHz.
func writeTestWAV(t *testing.T, path string, samples int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	encoder := wav.NewEncoder(f, 44100, 16, 1, 1)
	buf := &audio.IntBuffer{
		Data:   make([]int, samples),
		Format: &audio.Format{SampleRate: 44100, NumChannels: 1},
	}
	require.NoError(t, encoder.Write(buf))
	require.NoError(t, encoder.Close())
}

func TestProbeReadsRealDuration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bark_recording_20240601_062500.wav")
	writeTestWAV(t, path, 44100) // one second

	prober := NewDurationProber(300)
	duration := prober.Duration(path)

	// header bytes inflate the size-derived sample count slightly
	assert.InDelta(t, 1.0, duration, 0.01)
}

func TestProbeFallsBackOnUnreadableFile(t *testing.T) {
	t.Parallel()

	prober := NewDurationProber(300)

	assert.InDelta(t, 300.0, prober.Duration(filepath.Join(t.TempDir(), "missing.wav")), 1e-9)

	notWav := filepath.Join(t.TempDir(), "not_audio.wav")
	require.NoError(t, os.WriteFile(notWav, []byte("plainly not a wav"), 0o644))
	assert.InDelta(t, 300.0, prober.Duration(notWav), 1e-9)
}

func TestProbeCachesPerPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bark_recording_20240601_062500.wav")
	writeTestWAV(t, path, 44100)

	prober := NewDurationProber(300)
	first := prober.Duration(path)

	// removing the file does not change the cached answer
	require.NoError(t, os.Remove(path))
	assert.InDelta(t, first, prober.Duration(path), 1e-9)
}

func TestScanRecordingsSkipsForeignFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestWAV(t, filepath.Join(dir, "bark_recording_20240601_062500.wav"), 4410)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bark_recording_bad.wav"), []byte("x"), 0o644))

	files, err := ScanRecordings(dir, DefaultPrefix, NewDurationProber(300))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "bark_recording_20240601_062500.wav", files[0].Name)
	assert.Equal(t, 6, files[0].Start.Hour())
}
