// Package cmd holds the receptionist command line.
package cmd

import (
	"github.com/spf13/cobra"
)

var operatorsFile string

var rootCmd = &cobra.Command{
	Use:           "receptionist",
	Short:         "Voice receptionist relay: assistant config, lead texts and spam digests for tradies",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&operatorsFile, "tradies", "", "operators file (overrides TRADIES_FILE)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(operatorsCmd)
}
