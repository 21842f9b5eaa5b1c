// defaults.go: default values for the viper configuration.
package conf

import (
	"github.com/spf13/viper"
)

// setDefaultConfig sets the default values for the viper configuration.
// These apply when the corresponding key is missing from config.yaml.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	// Main settings
	viper.SetDefault("main.name", "BarkNet")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "barknet.log")

	// Detector settings
	viper.SetDefault("detector.sensitivity", 0.5)
	viper.SetDefault("detector.minbarkduration", 0.1)

	// Analysis settings
	viper.SetDefault("analysis.sessiongap", 30.0)
	viper.SetDefault("analysis.constantminduration", 300.0)
	viper.SetDefault("analysis.minviolationspan", 60.0)
	viper.SetDefault("analysis.barkduration", 0.5)

	// Calibration settings
	viper.SetDefault("calibration.tolerance", 2.0)
	viper.SetDefault("calibration.profilesdir", "profiles")
	viper.SetDefault("calibration.sweep.min", 0.1)
	viper.SetDefault("calibration.sweep.max", 0.9)
	viper.SetDefault("calibration.sweep.step", 0.05)
	viper.SetDefault("calibration.live.interval", 30)
	viper.SetDefault("calibration.live.step", 0.05)
	viper.SetDefault("calibration.live.mindelta", 0.01)
	viper.SetDefault("calibration.live.minsensitivity", 0.1)
	viper.SetDefault("calibration.live.maxsensitivity", 0.95)

	// Realtime settings
	viper.SetDefault("realtime.interval", 30)

	// Recordings settings
	viper.SetDefault("recordings.dir", "recordings")
	viper.SetDefault("recordings.prefix", "bark_recording")
	viper.SetDefault("recordings.fallbackduration", 300.0)

	// Output settings
	viper.SetDefault("output.sqlite.enabled", false)
	viper.SetDefault("output.sqlite.path", "barknet.db")
}
