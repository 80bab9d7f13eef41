package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape Skill India Digital once and store the postings",
	RunE:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.svc.Scrape(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Scraped %d jobs successfully", res.Count)
	if res.Fallback {
		fmt.Fprint(cmd.OutOrStdout(), " (sample postings, live site returned nothing)")
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
