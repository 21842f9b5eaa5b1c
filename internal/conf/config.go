// config.go: configuration for the barknet application. Defines the
// settings struct and the functions to load and save settings.
package conf

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/barknet/barknet-go/internal/errors"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled bool   // true to enable this log
	Path    string // path to the log file
}

// AnalysisSettings carries the legal thresholds for session building and
// violation classification. All values are seconds.
type AnalysisSettings struct {
	SessionGap          float64 // max inter-event gap within a session or violation run
	ConstantMinDuration float64 // run span at which a violation is Constant
	MinViolationSpan    float64 // minimum reportable run span
	BarkDuration        float64 // nominal length of a log-derived bark instant
}

// DetectorSettings is the operating point handed to the inference engine.
type DetectorSettings struct {
	Sensitivity     float64 // detection threshold being calibrated
	MinBarkDuration float64 // shortest event the detector reports
}

// SweepSettings controls offline sensitivity sweeps.
type SweepSettings struct {
	Min  float64
	Max  float64
	Step float64
}

// LiveSettings controls the real-time human-feedback calibration loop.
type LiveSettings struct {
	Interval       int     // evaluation period in seconds
	Step           float64 // nudge size per evaluation
	MinDelta       float64 // smallest committed change
	MinSensitivity float64
	MaxSensitivity float64
}

// CalibrationSettings groups everything calibration-related.
type CalibrationSettings struct {
	Tolerance   float64 // match tolerance in seconds
	ProfilesDir string  // directory holding <name>.json profiles
	Sweep       SweepSettings
	Live        LiveSettings
}

// RealtimeSettings controls continuous log monitoring.
type RealtimeSettings struct {
	Interval int // seconds between log-follow ticks
}

// RecordingsSettings locates and interprets the recorder's output.
type RecordingsSettings struct {
	Dir              string  // recordings directory
	Prefix           string  // filename convention prefix
	FallbackDuration float64 // assumed duration when a file cannot be probed, seconds
}

// Settings contains all configuration options for the barknet application.
type Settings struct {
	Debug bool // true to enable debug mode

	// Runtime values, not stored in the config file
	Version string `yaml:"-"`

	Main struct {
		Name string    // name of this monitoring node
		Log  LogConfig // logging configuration
	}

	Detector    DetectorSettings
	Analysis    AnalysisSettings
	Calibration CalibrationSettings
	Realtime    RealtimeSettings
	Recordings  RecordingsSettings

	Input struct {
		Path string `yaml:"-"` // input file for one-shot analysis
	} `yaml:"-"`

	Output struct {
		SQLite struct {
			Enabled bool   // true to persist violations to sqlite
			Path    string // path to sqlite database
		}
	}
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into the
// settings instance.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, errors.New(err).Category(errors.CategoryConfiguration).Build()
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the
// configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// defined in defaults.go
	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the directories searched for config.yaml,
// most specific first.
func GetDefaultConfigPaths() ([]string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return []string{"."}, nil
	}
	return []string{
		".",
		filepath.Join(configDir, "barknet"),
	}, nil
}

// createDefaultConfig writes the embedded default config to the user's
// config directory and loads it.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[len(configPaths)-1], "config.yaml")

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(getDefaultConfig()), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the default configuration from the embedded
// config.yaml file.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading embedded config file: %v", err)
	}
	return string(data)
}

// GetSettings returns the current settings instance
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting returns the current settings instance, initializing it if
// necessary
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				log.Fatalf("Error loading settings: %v", err)
			}
		}
	})
	return GetSettings()
}

// SaveYAMLConfig writes the settings to the given path. It overwrites
// the existing file, not preserving comments. The write goes through a
// temporary file so a crash cannot leave a half-written config behind.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(configPath), "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary config file: %w", err)
	}
	tempName := tempFile.Name()

	if _, err := tempFile.Write(yamlData); err != nil {
		tempFile.Close()
		os.Remove(tempName)
		return fmt.Errorf("error writing temporary config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("error closing temporary config file: %w", err)
	}

	if err := os.Rename(tempName, configPath); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("error replacing config file: %w", err)
	}
	return nil
}
