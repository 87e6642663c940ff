package llm

import (
	"diya-backend/lib/textutil"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MAX_ERROR_SNIPPET is how much of an undecodable reply is quoted in errors.
const MAX_ERROR_SNIPPET = 160

// DecodeJSON unmarshals a model reply into target. Persona and post replies are
// single JSON objects, often wrapped in a ```json fence or surrounded by prose.
func DecodeJSON(reply string, target any) error {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return errors.New("empty reply")
	}

	err := json.Unmarshal([]byte(reply), target)
	if err == nil {
		return nil
	}

	object := extractObject(reply)
	if object == "" || object == reply {
		return fmt.Errorf("decode reply: %w (reply: %s)", err, snippet(reply))
	}
	err = json.Unmarshal([]byte(object), target)
	if err != nil {
		return fmt.Errorf("decode object in reply: %w (object: %s)", err, snippet(object))
	}
	return nil
}

var fenceRegex = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\\s*(.*?)```")

// extractObject returns the first balanced {...} of the reply, searching the
// first code fence when there is one. Braces inside JSON strings do not count.
func extractObject(reply string) string {
	if match := fenceRegex.FindStringSubmatch(reply); match != nil {
		reply = match[1]
	}
	reply = strings.TrimSpace(reply)

	start := strings.IndexByte(reply, '{')
	if start < 0 {
		return reply
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(reply); i++ {
		c := reply[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return reply[start : i+1]
			}
		}
	}
	// unterminated, json.Unmarshal reports where it ends
	return reply[start:]
}

func snippet(s string) string {
	s = textutil.CollapseWhitespace(s)
	if s == "" {
		return "<empty>"
	}
	if utf8.RuneCountInString(s) > MAX_ERROR_SNIPPET {
		return textutil.Truncate(s, MAX_ERROR_SNIPPET) + "..."
	}
	return s
}
