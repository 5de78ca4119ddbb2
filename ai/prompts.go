package ai

import (
	"fmt"
	"sort"
	"strings"

	"goeda/domain/dataset"
	"goeda/internal/errors"
	"goeda/internal/profiling"
)

// AnalysisType selects one of the four fixed insight analyses
type AnalysisType string

const (
	AnalysisSummary         AnalysisType = "summary"
	AnalysisDataQuality     AnalysisType = "data_quality"
	AnalysisInsights        AnalysisType = "insights"
	AnalysisRecommendations AnalysisType = "recommendations"
)

// StrongCorrelationThreshold is the |r| cutoff for the insights prompt
const StrongCorrelationThreshold = 0.5

// sampleRows bounds the dataset sample embedded in prompts
const sampleRows = 5

// AllAnalysisTypes returns the four analysis types in presentation order
func AllAnalysisTypes() []AnalysisType {
	return []AnalysisType{AnalysisSummary, AnalysisDataQuality, AnalysisInsights, AnalysisRecommendations}
}

// ParseAnalysisType validates a user-supplied analysis type string
func ParseAnalysisType(s string) (AnalysisType, error) {
	switch AnalysisType(s) {
	case AnalysisSummary, AnalysisDataQuality, AnalysisInsights, AnalysisRecommendations:
		return AnalysisType(s), nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unknown analysis type %q", s))
}

// BuildPrompt renders the deterministic analysis prompt for one analysis
// type from a profile report and a bounded sample of the dataset.
// Pure string construction: no side effects, no external calls.
func BuildPrompt(report *profiling.Report, table *dataset.Table, analysisType AnalysisType) (string, error) {
	switch analysisType {
	case AnalysisSummary:
		return buildSummaryPrompt(report, table), nil
	case AnalysisDataQuality:
		return buildDataQualityPrompt(report, table), nil
	case AnalysisInsights:
		return buildInsightsPrompt(report, table), nil
	case AnalysisRecommendations:
		return buildRecommendationsPrompt(report), nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unknown analysis type %q", analysisType))
}

func buildSummaryPrompt(report *profiling.Report, table *dataset.Table) string {
	return fmt.Sprintf(`Analyze this dataset and provide a comprehensive summary in plain English:

Dataset Information:
- Shape: %d rows, %d columns
- Columns: %s
- Data types: %s
- Missing values: %d total
- Duplicate rows: %d

Sample data (first %d rows):
%s

Please provide:
1. Overall description of the dataset
2. Key characteristics of the data
3. Potential use cases or domain`,
		report.Rows, report.Cols,
		strings.Join(table.ColumnNames(), ", "),
		renderColumnTypes(report, table),
		report.TotalMissing(), report.DuplicateRows,
		sampleRows, RenderSample(table, sampleRows))
}

func buildDataQualityPrompt(report *profiling.Report, table *dataset.Table) string {
	return fmt.Sprintf(`Analyze data quality issues in this dataset:

Dataset Information:
- Shape: %d rows, %d columns
- Missing values by column: %s
- Missing percentages: %s
- Duplicate rows: %d

Numerical columns descriptive stats:
%s

Please identify:
1. Data quality issues (missing values, duplicates, etc.)
2. Potential data integrity problems
3. Recommendations for data cleaning`,
		report.Rows, report.Cols,
		renderMissingCounts(report, table),
		renderMissingPercentages(report, table),
		report.DuplicateRows,
		renderNumericStats(report, table))
}

func buildInsightsPrompt(report *profiling.Report, table *dataset.Table) string {
	return fmt.Sprintf(`Provide insights and analysis of this dataset:

Dataset Overview:
- %d rows, %d columns
- Numerical columns: %d
- Categorical columns: %d

Correlation Analysis:
%s

Sample data (first %d rows):
%s

Please provide:
1. Key trends and patterns in the data
2. Important correlations and relationships
3. Notable outliers or unusual patterns
4. Business insights or observations`,
		report.Rows, report.Cols,
		len(table.NumericColumns()), len(table.CategoricalColumns()),
		renderCorrelationSummary(report),
		sampleRows, RenderSample(table, sampleRows))
}

func buildRecommendationsPrompt(report *profiling.Report) string {
	return fmt.Sprintf(`Based on this dataset analysis, provide recommendations for next steps:

Dataset Info:
- Shape: %d rows, %d columns
- Missing data: %d total missing values
- Duplicates: %d duplicate rows

Column types: %s

Please suggest:
1. Data preprocessing steps needed
2. Feature engineering opportunities
3. Potential modeling approaches
4. Additional analysis that would be valuable`,
		report.Rows, report.Cols,
		report.TotalMissing(), report.DuplicateRows,
		renderColumnTypesFromReport(report))
}

// renderCorrelationSummary lists pairs above the strong-correlation
// threshold, or the fixed no-correlation sentence
func renderCorrelationSummary(report *profiling.Report) string {
	pairs := report.StrongCorrelations(StrongCorrelationThreshold)
	if len(pairs) == 0 {
		return "No strong correlations found"
	}
	parts := make([]string, len(pairs))
	for i, pair := range pairs {
		parts[i] = fmt.Sprintf("%s and %s: %.2f", pair.A, pair.B, pair.Corr)
	}
	return "Strong correlations: " + strings.Join(parts, ", ")
}

// RenderSample renders the first n rows as an aligned text table
func RenderSample(table *dataset.Table, n int) string {
	names := table.ColumnNames()
	rows := table.Head(n)

	widths := make([]int, len(names))
	for i, name := range names {
		widths[i] = len(name)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
		b.WriteString("\n")
	}
	writeRow(names)
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderColumnTypes(report *profiling.Report, table *dataset.Table) string {
	parts := make([]string, 0, report.Cols)
	for _, name := range table.ColumnNames() {
		parts = append(parts, fmt.Sprintf("%s: %s", name, report.ColumnTypes[name]))
	}
	return strings.Join(parts, ", ")
}

// renderColumnTypesFromReport renders types without a table, in name order
// stable enough for a prompt (map iteration order is avoided)
func renderColumnTypesFromReport(report *profiling.Report) string {
	names := sortedKeys(report.ColumnTypes)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, report.ColumnTypes[name]))
	}
	return strings.Join(parts, ", ")
}

func renderMissingCounts(report *profiling.Report, table *dataset.Table) string {
	parts := make([]string, 0, report.Cols)
	for _, name := range table.ColumnNames() {
		parts = append(parts, fmt.Sprintf("%s=%d", name, report.MissingCounts[name]))
	}
	return strings.Join(parts, ", ")
}

func renderMissingPercentages(report *profiling.Report, table *dataset.Table) string {
	parts := make([]string, 0, report.Cols)
	for _, name := range table.ColumnNames() {
		parts = append(parts, fmt.Sprintf("%s=%.2f%%", name, report.MissingPct[name]))
	}
	return strings.Join(parts, ", ")
}

func renderNumericStats(report *profiling.Report, table *dataset.Table) string {
	numeric := table.NumericColumns()
	if len(numeric) == 0 {
		return "No numerical columns"
	}
	var b strings.Builder
	b.WriteString("column  count  mean  std  min  25%  50%  75%  max\n")
	for _, col := range numeric {
		s := report.NumericStats[col.Name]
		b.WriteString(fmt.Sprintf("%s  %d  %.2f  %.2f  %.2f  %.2f  %.2f  %.2f  %.2f\n",
			col.Name, s.Count, s.Mean, s.StdDev, s.Min, s.Q25, s.Median, s.Q75, s.Max))
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
