// Command engine runs the job classification engine: the HTTP API and
// dashboard, one-shot analysis and scraping, and an MCP stdio server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jobclassify-engine/internal/config"
)

var version = "1.0.0"

var dataDir string

var rootCmd = &cobra.Command{
	Use:           "engine",
	Short:         "Job classification and matching engine",
	Long:          "Classifies informal-sector job postings by trade, extracts salary and city, flags likely scams and matches postings to worker profiles.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Engine data directory (default $"+config.EnvPrefix+"DATA_DIR or .)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
