// Package cmd provides the command-line interface for steptrace.
package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "steptrace",
	Short: "steptrace traces suspendable tasks at the task and the step level.",
	Long: `steptrace traces suspendable tasks at the task and the step level. ` +
		`The run command executes a batch of demo tasks and prints a summary ` +
		`of the spans collected.`,
}

func init() {
	cobra.OnInitialize(loadDotEnv)
}

// loadDotEnv reads the .env file in the working directory, if any. Variables
// already set in the environment are not overwritten.
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: cannot load .env: %v", err)
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It exits the program through atexit so that trace writers
// can flush.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
