package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Model output occasionally drifts from strict JSON even when a response
// schema is requested. These cover the drift seen in practice.
var (
	trailingCommaRegex     = regexp.MustCompile(`,\s*([}\]])`)
	missingCommaRegex      = regexp.MustCompile(`("|\d|true|false|null|[}\]])\s*\n\s*("[^"\n]+"\s*:)`)
	singleQuoteKeyRegex    = regexp.MustCompile(`([{,]\s*)'(\w+)'(\s*:)`)
	singleQuoteStringRegex = regexp.MustCompile(`([:\[,]\s*)'((?:[^'\\]|\\.)*)'(\s*[,}\]])`)
)

// ExtractAndParseJSON pulls the first JSON value out of a model response
// and decodes it into T. Markdown fences and trailing prose are ignored;
// common syntax slips are repaired before giving up.
func ExtractAndParseJSON[T any](response string) (T, error) {
	var result T

	cleaned := stripFences(response)
	if cleaned == "" {
		return result, fmt.Errorf("no JSON found in response")
	}

	// A JSON document wrapped in a JSON string.
	if strings.HasPrefix(cleaned, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(cleaned), &inner); err == nil {
			return ExtractAndParseJSON[T](inner)
		}
	}

	idx := strings.IndexAny(cleaned, "{[")
	if idx == -1 {
		return result, fmt.Errorf("no JSON start ({ or [) found")
	}

	body := cleaned[idx:]
	err := decodeFirst(body, &result)
	if err == nil {
		return result, nil
	}

	if repaired := repairJSON(body); repaired != body {
		var retry T
		if decodeFirst(repaired, &retry) == nil {
			return retry, nil
		}
	}
	return result, fmt.Errorf("parse JSON: %w", err)
}

func decodeFirst(s string, v any) error {
	return json.NewDecoder(strings.NewReader(s)).Decode(v)
}

// repairJSON fixes control characters inside strings, missing and trailing
// commas, single-quoted keys and strings, and truncated output.
func repairJSON(input string) string {
	out := escapeControlChars(input)
	out = missingCommaRegex.ReplaceAllString(out, `$1, $2`)
	out = trailingCommaRegex.ReplaceAllString(out, `$1`)
	out = singleQuoteKeyRegex.ReplaceAllString(out, `$1"$2"$3`)
	// Adjacent matches share a delimiter, so repeat until stable.
	for i := 0; i < 4; i++ {
		next := singleQuoteStringRegex.ReplaceAllStringFunc(out, requoteString)
		if next == out {
			break
		}
		out = next
	}
	return closeTruncated(out)
}

func requoteString(m string) string {
	parts := singleQuoteStringRegex.FindStringSubmatch(m)
	if len(parts) != 4 {
		return m
	}
	v := strings.ReplaceAll(parts[2], `\'`, `'`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return parts[1] + `"` + v + `"` + parts[3]
}

// escapeControlChars escapes raw control characters that appear inside
// string literals. Structure outside strings is left alone.
func escapeControlChars(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	inString, escaped := false, false
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString && c < 0x20:
			switch c {
			case '\n':
				b.WriteString(`\n`)
			case '\t':
				b.WriteString(`\t`)
			case '\r':
				b.WriteString(`\r`)
			default:
				fmt.Fprintf(&b, `\u%04x`, c)
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// closeTruncated terminates an unfinished string and closes any open
// arrays and objects, innermost first.
func closeTruncated(input string) string {
	var stack []byte
	inString, escaped := false, false
	for i := 0; i < len(input); i++ {
		c := input[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			stack = append(stack, '}')
		case c == '[':
			stack = append(stack, ']')
		case (c == '}' || c == ']') && len(stack) > 0:
			stack = stack[:len(stack)-1]
		}
	}

	if inString {
		input += `"`
	}
	for i := len(stack) - 1; i >= 0; i-- {
		input += string(stack[i])
	}
	return input
}

func stripFences(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
		if nl := strings.IndexByte(response, '\n'); nl >= 0 && !strings.ContainsAny(response[:nl], "{[") {
			response = response[nl+1:]
		}
	}
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
