package generate

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ExtractDraft pulls a Draft out of raw model output. Models are asked for
// bare JSON but routinely wrap it in markdown fences or prose, so extraction
// is layered: direct parse, then the first balanced {...} span, then a
// jsonrepair pass. Each layer runs once; there are no hidden retries. When
// every layer fails the returned ParseError carries the raw text.
func ExtractDraft(content string) (*Draft, error) {
	candidate := content
	if m := fencedJSONRe.FindStringSubmatch(content); m != nil {
		candidate = m[1]
	}
	candidate = strings.TrimSpace(candidate)

	var draft Draft
	if err := json.Unmarshal([]byte(candidate), &draft); err == nil {
		return &draft, nil
	}

	var firstErr error
	if span, ok := balancedObject(candidate); ok {
		err := json.Unmarshal([]byte(span), &draft)
		if err == nil {
			return &draft, nil
		}
		firstErr = err

		if repaired, repairErr := jsonrepair.JSONRepair(span); repairErr == nil {
			if json.Unmarshal([]byte(repaired), &draft) == nil {
				return &draft, nil
			}
		}
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err == nil {
		if unmarshalErr := json.Unmarshal([]byte(repaired), &draft); unmarshalErr == nil {
			return &draft, nil
		} else if firstErr == nil {
			firstErr = unmarshalErr
		}
	} else if firstErr == nil {
		firstErr = err
	}

	return nil, &ParseError{Raw: content, Err: firstErr}
}

// balancedObject returns the first balanced {...} span in s, honoring string
// literals and escapes so braces inside values do not end the span early.
func balancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
