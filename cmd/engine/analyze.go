package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	analyzeFile string
	analyzeJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Classify one job posting",
	Long:  "Classify a job posting given as arguments, with --file, or on stdin.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read the posting from a file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := postingText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no posting text given")
	}

	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.Close()

	a := e.svc.Analyze(cmd.Context(), text)
	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	fmt.Fprintf(out, "Category:   %s (%s)\n", a.Category, a.RawCategory)
	fmt.Fprintf(out, "Confidence: %.2f\n", a.Confidence)
	if a.Salary != nil {
		fmt.Fprintf(out, "Salary:     ₹%d - ₹%d\n", a.Salary.Min, a.Salary.Max)
	}
	if a.Location != nil {
		fmt.Fprintf(out, "Location:   %s\n", *a.Location)
	}
	fmt.Fprintf(out, "Suspicious: %t\n", a.IsSuspicious)
	return nil
}

func postingText(stdin io.Reader, args []string) (string, error) {
	switch {
	case analyzeFile != "":
		b, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(b), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
}
