package ai

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"goeda/domain/dataset"
	"goeda/internal/config"
	"goeda/internal/profiling"
)

// missingKeyMessage is what insight views show when no API key is configured
const missingKeyMessage = "EURI API key not configured. Please set EURI_API_KEY environment variable."

// InsightRequest pairs an analysis type with its rendered prompt
type InsightRequest struct {
	Type   AnalysisType `json:"type"`
	Prompt string       `json:"prompt"`
}

// InsightResponse is the outcome of one insight generation call
type InsightResponse struct {
	Type AnalysisType `json:"type"`
	Text string       `json:"text"`
	Done bool         `json:"done"`
	Err  string       `json:"error,omitempty"`
}

// InsightService orchestrates prompt building, the streaming transport and
// aggregation for the four analysis types. One call handles exactly one
// analysis type; each call owns its own aggregator state.
type InsightService struct {
	client *StreamingClient
}

// NewInsightService creates the orchestrator. A missing API key is allowed
// here; generation fails fast per call instead.
func NewInsightService(cfg config.AIConfig) *InsightService {
	return &InsightService{client: NewStreamingClient(cfg)}
}

// Configured reports whether an API key is present
func (s *InsightService) Configured() bool {
	return s.client.APIKey != ""
}

// GenerateInsight produces the insight text for one analysis type.
// Fails fast with a configuration error before any network call when the
// API key is absent. Transport failures are converted into a user-visible
// error string returned in place of insight text.
func (s *InsightService) GenerateInsight(ctx context.Context, table *dataset.Table, report *profiling.Report, analysisType AnalysisType, sink ProgressSink) InsightResponse {
	if !s.Configured() {
		return InsightResponse{Type: analysisType, Text: missingKeyMessage, Done: true, Err: "missing API key"}
	}

	prompt, err := BuildPrompt(report, table, analysisType)
	if err != nil {
		return InsightResponse{Type: analysisType, Done: true, Err: err.Error()}
	}

	text, err := s.client.StreamCompletion(ctx, prompt, sink)
	if err != nil {
		log.Printf("[InsightService] %s generation failed: %v", analysisType, err)
		return InsightResponse{
			Type: analysisType,
			Text: fmt.Sprintf("Error generating insights: %v", err),
			Done: true,
			Err:  err.Error(),
		}
	}
	return InsightResponse{Type: analysisType, Text: text, Done: true}
}

// GenerateAll runs all four analysis types concurrently, each with an
// independent aggregator, and returns responses keyed by type. A failure in
// one analysis type never affects the others.
func (s *InsightService) GenerateAll(ctx context.Context, table *dataset.Table, report *profiling.Report, sinks map[AnalysisType]ProgressSink) map[AnalysisType]InsightResponse {
	types := AllAnalysisTypes()
	responses := make([]InsightResponse, len(types))

	var g errgroup.Group
	for i, analysisType := range types {
		i, analysisType := i, analysisType
		g.Go(func() error {
			responses[i] = s.GenerateInsight(ctx, table, report, analysisType, sinks[analysisType])
			return nil
		})
	}
	// Errors are carried inside each response, never across the group
	_ = g.Wait()

	out := make(map[AnalysisType]InsightResponse, len(types))
	for i, analysisType := range types {
		out[analysisType] = responses[i]
	}
	return out
}
