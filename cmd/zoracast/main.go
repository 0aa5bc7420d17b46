package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configDir string
	logLevel  string
)

// rootCmd is the base command for the zoracast CLI
var rootCmd = &cobra.Command{
	Use:   "zoracast",
	Short: "Creator coin post-value forecaster",
	Long: `zoracast estimates the expected value of publishing a social post that
references an on-chain creator coin, and recommends a posting time.
It combines coin market metrics, community comment sentiment and
time-of-day effects through a small trained regression model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		zerolog.SetGlobalLevel(level)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("zoracast - creator coin post-value forecaster")
		fmt.Println("Use 'zoracast serve' to start the API server")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "config", "Path to configuration directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
