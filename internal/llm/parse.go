package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Model replies are not trusted to be clean JSON: they arrive wrapped in
// code fences, prefixed with prose, or malformed outright. The helpers
// here extract the first well-formed JSON value and decode it into a
// typed shape, returning an explicit ParseFailure instead of a partially
// populated result. Call sites branch on the failure, never on nil maps.

// ParseFailure describes why a model reply could not be parsed
type ParseFailure struct {
	Reason string // Short machine-independent cause, safe for rationales
	Raw    string // The offending reply, for debug logging
}

func (f *ParseFailure) Error() string {
	return fmt.Sprintf("parse model reply: %s", f.Reason)
}

// Classification is the expected shape of a claim-verification reply
type Classification struct {
	Status    string `json:"status"`
	Rationale string `json:"rationale"`
}

// StripFences removes surrounding markdown code-fence markers
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseStringArray extracts the first well-formed JSON array of strings
// from a model reply, tolerating surrounding prose and code fences.
func ParseStringArray(reply string) ([]string, *ParseFailure) {
	raw, fail := firstJSONValue(StripFences(reply), '[', ']')
	if fail != nil {
		fail.Raw = reply
		return nil, fail
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// Tolerate arrays of objects with a "claim" or "text" field
		var objs []map[string]any
		if err2 := json.Unmarshal([]byte(raw), &objs); err2 != nil {
			return nil, &ParseFailure{Reason: "array is not valid JSON", Raw: reply}
		}
		for _, obj := range objs {
			for _, key := range []string{"claim", "text", "statement"} {
				if s, ok := obj[key].(string); ok && s != "" {
					items = append(items, s)
					break
				}
			}
		}
	}

	return items, nil
}

// ParseClassification extracts the first well-formed JSON object from a
// model reply and decodes it as a {status, rationale} classification.
// The status value is not validated here; the verifier owns the vocabulary.
func ParseClassification(reply string) (*Classification, *ParseFailure) {
	raw, fail := firstJSONValue(StripFences(reply), '{', '}')
	if fail != nil {
		fail.Raw = reply
		return nil, fail
	}

	var c Classification
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, &ParseFailure{Reason: "object is not valid JSON", Raw: reply}
	}
	if c.Status == "" {
		return nil, &ParseFailure{Reason: "reply is missing a status field", Raw: reply}
	}

	return &c, nil
}

// firstJSONValue returns the first balanced open..close substring,
// tracking string literals and escapes so brackets inside quoted text
// do not confuse the depth count.
func firstJSONValue(s string, open, closing byte) (string, *ParseFailure) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", &ParseFailure{Reason: fmt.Sprintf("no %q found in reply", string(open))}
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", &ParseFailure{Reason: "unbalanced JSON in reply"}
}
