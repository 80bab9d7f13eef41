package main

import (
	"github.com/spf13/cobra"

	"jobclassify-engine/internal/mcptool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the engine as MCP tools over stdio",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.Close()

	// stdout carries the protocol; logs stay on stderr.
	return mcptool.Serve(e.svc, version)
}
