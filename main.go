package main

import (
	"fmt"
	"os"

	"github.com/barknet/barknet-go/cmd"
	"github.com/barknet/barknet-go/internal/analysis"
	"github.com/barknet/barknet-go/internal/calibration"
	"github.com/barknet/barknet-go/internal/conf"
	"github.com/barknet/barknet-go/internal/logging"
)

// version is set at build time through ldflags
var version = "dev"

func main() {
	os.Exit(run())
}

// run keeps the exit code out of main so the deferred log teardown
// actually executes.
func run() int {
	logging.Init()
	defer func() {
		_ = analysis.CloseLogger()
		_ = calibration.CloseLogger()
	}()

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	settings.Version = version

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
