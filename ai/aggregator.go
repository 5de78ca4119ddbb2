package ai

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// NoContentMessage is returned when a stream closes without ever yielding a
// content fragment, so callers can distinguish "no content produced" from an
// empty accumulator that is still streaming.
const NoContentMessage = "Unable to generate insights"

// dataPrefix marks content-bearing lines in the SSE-style response
const dataPrefix = "data: "

// ProgressSink receives the accumulated text after each content fragment.
// It decouples incremental rendering from any specific surface.
type ProgressSink func(accumulated string)

// StreamAggregator reassembles a chunked inference response into one running
// text. One aggregator owns exactly one stream's state; callers running
// analyses concurrently must use independent instances.
type StreamAggregator struct {
	text      strings.Builder
	fragments int
	sink      ProgressSink
}

// streamChunk is the expected payload shape of a content-bearing line
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// NewStreamAggregator creates an aggregator; sink may be nil
func NewStreamAggregator(sink ProgressSink) *StreamAggregator {
	return &StreamAggregator{sink: sink}
}

// Consume pulls lines from the stream until it closes, feeding each through
// ConsumeLine. The returned error is transport-level only; malformed lines
// never produce an error.
func (a *StreamAggregator) Consume(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		a.ConsumeLine(scanner.Text())
	}
	return scanner.Err()
}

// ConsumeLine processes one line of the stream. Lines without the data
// marker, blank payloads (no-op signals like "data: "), unparsable JSON and
// payloads missing choices[0].delta.content are all skipped silently:
// partial and heartbeat lines are expected during streaming.
func (a *StreamAggregator) ConsumeLine(line string) {
	if !strings.HasPrefix(line, dataPrefix) {
		return
	}
	payload := strings.TrimSpace(line[len(dataPrefix):])
	if payload == "" {
		return
	}

	var chunk streamChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return
	}
	if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
		return
	}

	a.text.WriteString(chunk.Choices[0].Delta.Content)
	a.fragments++
	if a.sink != nil {
		a.sink(a.text.String())
	}
}

// Text returns the accumulated text so far
func (a *StreamAggregator) Text() string {
	return a.text.String()
}

// Fragments returns how many content fragments have been extracted
func (a *StreamAggregator) Fragments() int {
	return a.fragments
}

// Result returns the final accumulated text, or the fixed no-content
// message when the stream never yielded a fragment
func (a *StreamAggregator) Result() string {
	if a.fragments == 0 {
		return NoContentMessage
	}
	return a.text.String()
}
