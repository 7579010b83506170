// Package suggestions turns a resume and a summarized job posting into typed tailoring
// suggestions. The model is asked for "Type:"/"Message:" line pairs which Parse reads back.
package suggestions

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	typePrefix    = "Type:"
	messagePrefix = "Message:"
)

// parseState is the position of the parser within a Type/Message pair.
type parseState int

const (
	awaitingType parseState = iota
	awaitingMessage
)

// ParseReport describes the outcome of a parse pass.
type ParseReport struct {
	Suggestions []types.Suggestion
	// Incomplete counts Type lines that were dropped because the next
	// non-blank line was not a Message line.
	Incomplete int
	// Lines is the number of non-blank lines scanned.
	Lines int
}

// Parse extracts suggestions from a model response. See ParseWithReport.
func Parse(text string) []types.Suggestion {
	return ParseWithReport(text).Suggestions
}

// ParseWithReport scans the non-blank lines of text in order. A line starting with
// "Type:" opens a pair; it is completed only by the immediately following non-blank
// line when that line starts with "Message:". An incomplete pair is discarded without
// error. Values are the text after the first colon, trimmed.
func ParseWithReport(text string) ParseReport {
	report := ParseReport{Suggestions: []types.Suggestion{}}

	state := awaitingType
	var pending types.SuggestionType

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		report.Lines++

		switch state {
		case awaitingType:
			if label, ok := fieldValue(line, typePrefix); ok {
				pending = types.SuggestionType(label)
				state = awaitingMessage
			}

		case awaitingMessage:
			if message, ok := fieldValue(line, messagePrefix); ok {
				report.Suggestions = append(report.Suggestions, types.Suggestion{
					Type:    pending,
					Message: message,
				})
				state = awaitingType
				continue
			}

			report.Incomplete++
			state = awaitingType
			if label, ok := fieldValue(line, typePrefix); ok {
				pending = types.SuggestionType(label)
				state = awaitingMessage
			}
		}
	}

	if state == awaitingMessage {
		report.Incomplete++
	}

	return report
}

// fieldValue returns the trimmed text after the first colon when line starts with prefix.
func fieldValue(line, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	return strings.TrimSpace(line[len(prefix):]), true
}
