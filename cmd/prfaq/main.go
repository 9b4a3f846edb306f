// Package main provides the prfaq CLI: PR-FAQ scoring, the guided workflow API server, and backups.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bordenet/pr-faq-assistant/internal/config"
	"github.com/bordenet/pr-faq-assistant/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logJSON    bool
	logFile    string

	// appConfig is resolved before every command runs
	appConfig *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:           "prfaq",
	Short:         "PR-FAQ validator and assistant",
	Long:          "prfaq scores Amazon-style PR-FAQ documents against a 100-point rubric and serves a three-phase drafting workflow over REST.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logFile != "" {
			cfg.LogFile = logFile
		}
		cfg.LogJSON = cfg.LogJSON || logJSON
		appConfig = cfg

		closer, err := logging.Setup(logging.Options{
			Level:   cfg.LogLevel,
			JSON:    cfg.LogJSON,
			File:    cfg.LogFile,
			Verbose: verbose,
		})
		if err != nil {
			return err
		}
		logCloser = closer
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and detailed output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON lines")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	closeLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// closeLogs flushes and closes the log file opened by the last command run.
// Cobra skips post-run hooks when a command fails, so this runs after Execute.
func closeLogs() {
	if logCloser == nil {
		return
	}
	if err := logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
	}
	logCloser = nil
}
