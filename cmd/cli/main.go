package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"goeda/ai"
	"goeda/internal/config"
	loader "goeda/internal/dataset"
	"goeda/internal/export"
	"goeda/internal/profiling"
)

func main() {
	// .env is optional for the CLI; profiling needs no credentials
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "goeda",
		Short: "Automated exploratory data analysis over CSV datasets",
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newExportCmd(),
		newInsightsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [file.csv]",
		Short: "Profile a CSV dataset and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			report := profiling.Profile(table)

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export [file.csv]",
		Short: "Export an EDA report (html, xlsx) or re-export the data (csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			report := profiling.Profile(table)

			var payload []byte
			switch format {
			case "html":
				payload, err = export.HTMLReport(table, report, nil)
			case "xlsx":
				payload, err = export.WorkbookReport(table, report)
			case "csv":
				payload, err = export.DatasetCSV(table)
			default:
				return fmt.Errorf("unknown format %q (expected html, xlsx or csv)", format)
			}
			if err != nil {
				return err
			}

			if outPath == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				outPath = export.ReportFilename(base, format)
			}
			if err := os.WriteFile(outPath, payload, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", outPath, len(payload))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "html", "Export format: html, xlsx or csv")
	cmd.Flags().StringVar(&outPath, "out", "", "Output path (default: timestamped name next to the input)")
	return cmd
}

func newInsightsCmd() *cobra.Command {
	var analysisType string

	cmd := &cobra.Command{
		Use:   "insights [file.csv]",
		Short: "Generate AI insights for a dataset, streaming to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig, err := config.Load()
			if err != nil {
				return err
			}

			table, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			report := profiling.Profile(table)

			parsed, err := ai.ParseAnalysisType(analysisType)
			if err != nil {
				return err
			}

			service := ai.NewInsightService(appConfig.AI)

			// The sink carries the whole accumulated text; print only the
			// suffix so the stream renders incrementally on the terminal.
			printed := 0
			sink := func(accumulated string) {
				fmt.Print(accumulated[printed:])
				printed = len(accumulated)
			}

			response := service.GenerateInsight(cmd.Context(), table, report, parsed, sink)
			if printed == 0 {
				fmt.Print(response.Text)
			}
			fmt.Println()
			if response.Err != "" {
				return fmt.Errorf("insight generation failed: %s", response.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&analysisType, "type", "summary", "Analysis type: summary, data_quality, insights or recommendations")
	return cmd
}
