// Package generate drafts agenda content from a natural-language prompt via
// an OpenAI-compatible chat completions API, and extracts the structured
// result from whatever text the model returns.
package generate

import "fmt"

// Draft is the structured agenda proposal extracted from model output.
type Draft struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	AgendaItems []DraftItem `json:"agendaItems"`
}

// DraftItem is one proposed agenda item.
type DraftItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location"`
}

// ParseError reports model output that could not be read as a draft. Raw
// carries the full text for diagnostics and for surfacing to the caller.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
