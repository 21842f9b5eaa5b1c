package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	s := &Settings{}
	s.Detector.Sensitivity = 0.5
	s.Detector.MinBarkDuration = 0.1
	s.Analysis.SessionGap = 30
	s.Analysis.ConstantMinDuration = 300
	s.Analysis.MinViolationSpan = 60
	s.Analysis.BarkDuration = 0.5
	s.Calibration.Tolerance = 2
	s.Calibration.Sweep = SweepSettings{Min: 0.1, Max: 0.9, Step: 0.05}
	s.Calibration.Live = LiveSettings{Interval: 30, Step: 0.05, MinDelta: 0.01, MinSensitivity: 0.1, MaxSensitivity: 0.95}
	s.Realtime.Interval = 30
	s.Recordings.FallbackDuration = 300
	return s
}

func TestValidateSettingsAcceptsDefaults(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"sensitivity above one", func(s *Settings) { s.Detector.Sensitivity = 1.5 }},
		{"zero session gap", func(s *Settings) { s.Analysis.SessionGap = 0 }},
		{"constant below min span", func(s *Settings) { s.Analysis.ConstantMinDuration = 10 }},
		{"inverted sweep range", func(s *Settings) { s.Calibration.Sweep.Min = 1.0 }},
		{"zero sweep step", func(s *Settings) { s.Calibration.Sweep.Step = 0 }},
		{"inverted live clamps", func(s *Settings) { s.Calibration.Live.MinSensitivity = 0.95 }},
		{"zero fallback duration", func(s *Settings) { s.Recordings.FallbackDuration = 0 }},
		{"zero realtime interval", func(s *Settings) { s.Realtime.Interval = 0 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := validSettings()
			tt.mutate(s)
			assert.Error(t, ValidateSettings(s))
		})
	}
}

func TestSaveYAMLConfigRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	s := validSettings()
	s.Main.Name = "Backyard"

	require.NoError(t, SaveYAMLConfig(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Backyard")
	assert.Contains(t, string(data), "sessiongap: 30")
}

func TestSaveYAMLConfigLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, SaveYAMLConfig(filepath.Join(dir, "config.yaml"), validSettings()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.yaml", entries[0].Name())
}

func TestGetDefaultConfigPathsIncludesCwd(t *testing.T) {
	t.Parallel()

	paths, err := GetDefaultConfigPaths()
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
}

func TestEmbeddedDefaultConfigPresent(t *testing.T) {
	t.Parallel()

	content := getDefaultConfig()
	assert.Contains(t, content, "sessiongap:")
	assert.Contains(t, content, "sensitivity:")
}
