package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-analyzer/internal/analysis"
	"github.com/insightdelivered/statement-analyzer/internal/extractor"
	"github.com/insightdelivered/statement-analyzer/internal/layout"
	"github.com/insightdelivered/statement-analyzer/internal/writer"
)

func newAnalyzeCommand(logLevel *string) *cobra.Command {
	var output string
	var format string
	var includeSummary bool

	cmd := &cobra.Command{
		Use:   "analyze <statement.pdf> [statement2.pdf ...]",
		Short: "Analyze bank statement PDFs",
		Long: `Analyze converts text-layer bank statement PDFs into a transaction
ledger, derives statement and monthly summaries, and computes a
loan readiness score.

Output formats:
  json  - full report on stdout (default)
  csv   - transaction ledger
  xlsx  - workbook with Transactions, Summary, Monthly and Loan Analysis sheets`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(*logLevel)

			for _, path := range args {
				if err := analyzeFile(path, output, format, includeSummary); err != nil {
					log.Error().Err(err).Str("file", path).Msg("analysis failed")
					return err
				}
				log.Info().Str("file", path).Msg("analyzed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (defaults to input name with new extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, csv, xlsx")
	cmd.Flags().BoolVar(&includeSummary, "summary-header", false, "prepend summary rows to CSV output")

	return cmd
}

func analyzeFile(inputPath, outputPath, format string, includeSummary bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	pages, err := extractor.ExtractTokens(inputPath)
	if err != nil {
		return fmt.Errorf("PDF extraction failed: %w", err)
	}

	txns, _ := layout.NewExtractor(layout.HDFCTemplate()).Extract(pages)

	report, err := analysis.BuildReport(txns)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return writeJSON(report, outputPath)
	case "csv":
		w := &writer.CSVWriter{IncludeSummary: includeSummary}
		return w.WriteToFile(defaultOutput(inputPath, outputPath, ".csv"), report)
	case "xlsx":
		return writeXLSX(report, defaultOutput(inputPath, outputPath, ".xlsx"))
	default:
		return fmt.Errorf("unknown format %q: use json, csv, or xlsx", format)
	}
}

func writeJSON(report *analysis.Report, outputPath string) error {
	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating %q: %w", outputPath, err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeXLSX(report *analysis.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	w := &writer.ExcelWriter{}
	return w.Write(f, report)
}

// defaultOutput derives the output path from the input name when no
// explicit path was given.
func defaultOutput(inputPath, outputPath, ext string) string {
	if outputPath != "" {
		return outputPath
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext
}
