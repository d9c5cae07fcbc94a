package services

import (
	"regexp"
	"strings"
)

// Repair pass for malformed model replies. Models occasionally emit prose
// containing unescaped double quotes inside JSON string values, which breaks
// parsing. The repair re-escapes quotes inside each known field's value while
// leaving the field's own delimiting quotes alone.

const escapedQuotePlaceholder = "\x00__ESCQ__\x00"

// schemaStringFields and schemaArrayFields enumerate the reply schema; the
// repair only ever touches values of fields it knows.
var (
	schemaStringFields = []string{"summary", "experienceMatch", "educationMatch"}
	schemaArrayFields  = []string{"strengths", "weaknesses", "matchingSkills", "missingSkills", "suggestions"}
)

var codeFencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// StripCodeFences removes a Markdown code-fence wrapper if present and
// trims the text to the outermost JSON object.
func StripCodeFences(text string) string {
	if m := codeFencePattern.FindStringSubmatch(text); m != nil {
		text = m[1]
	} else {
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```", "")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return strings.TrimSpace(text)
}

// RepairJSON applies the quote re-escape pass to every known field.
func RepairJSON(text string) string {
	for _, field := range schemaStringFields {
		text = repairStringField(text, field)
	}
	for _, field := range schemaArrayFields {
		text = repairArrayField(text, field)
	}
	return text
}

// escapeInnerQuotes escapes bare double quotes in a value. Already-escaped
// quotes are parked behind a placeholder first so they are not doubled.
func escapeInnerQuotes(value string) string {
	v := strings.ReplaceAll(value, `\"`, escapedQuotePlaceholder)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return strings.ReplaceAll(v, escapedQuotePlaceholder, `\"`)
}

// repairStringField locates `"field": "..."` and re-escapes quotes inside
// the value. The closing delimiter is the first quote followed by `,` and a
// new key, or by `}`.
func repairStringField(text, field string) string {
	keyPattern := regexp.MustCompile(`"` + field + `"\s*:\s*"`)
	loc := keyPattern.FindStringIndex(text)
	if loc == nil {
		return text
	}

	valueStart := loc[1]
	valueEnd := -1
	for i := valueStart; i < len(text); i++ {
		if text[i] != '"' || (i > 0 && text[i-1] == '\\') {
			continue
		}
		if isStringValueTerminator(text, i) {
			valueEnd = i
			break
		}
	}
	if valueEnd < 0 {
		return text
	}

	repaired := escapeInnerQuotes(text[valueStart:valueEnd])
	return text[:valueStart] + repaired + text[valueEnd:]
}

// isStringValueTerminator reports whether the quote at i plausibly closes a
// field value: it is followed by `}` or by `,` introducing another key.
func isStringValueTerminator(text string, i int) bool {
	j := i + 1
	for j < len(text) && isJSONSpace(text[j]) {
		j++
	}
	if j >= len(text) || text[j] == '}' {
		return true
	}
	if text[j] != ',' {
		return false
	}
	j++
	for j < len(text) && isJSONSpace(text[j]) {
		j++
	}
	return j < len(text) && text[j] == '"' && looksLikeKey(text[j:])
}

// looksLikeKey matches `"word":` at the start of s.
var keyAheadPattern = regexp.MustCompile(`^"[A-Za-z_][A-Za-z0-9_]*"\s*:`)

func looksLikeKey(s string) bool {
	return keyAheadPattern.MatchString(s)
}

// repairArrayField re-escapes quotes inside the elements of a known
// array-of-strings field. Quotes adjacent to array structure (after `[` or
// `,`, before `,` or `]`) are element delimiters and stay untouched.
func repairArrayField(text, field string) string {
	keyPattern := regexp.MustCompile(`"` + field + `"\s*:\s*\[`)
	loc := keyPattern.FindStringIndex(text)
	if loc == nil {
		return text
	}

	open := loc[1]
	end := strings.IndexByte(text[open:], ']')
	if end < 0 {
		return text
	}
	end += open

	repaired := repairArrayContent(text[open:end])
	return text[:open] + repaired + text[end:]
}

func repairArrayContent(content string) string {
	s := strings.ReplaceAll(content, `\"`, escapedQuotePlaceholder)

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '"' {
			b.WriteByte(ch)
			continue
		}
		if isArrayDelimiterQuote(s, i) {
			b.WriteByte(ch)
		} else {
			b.WriteString(`\"`)
		}
	}

	return strings.ReplaceAll(b.String(), escapedQuotePlaceholder, `\"`)
}

func isArrayDelimiterQuote(s string, i int) bool {
	j := i - 1
	for j >= 0 && isJSONSpace(s[j]) {
		j--
	}
	if j < 0 || s[j] == ',' {
		return true // opens an element
	}

	k := i + 1
	for k < len(s) && isJSONSpace(s[k]) {
		k++
	}
	if k >= len(s) || s[k] == ',' {
		return true // closes an element
	}

	return false
}

func isJSONSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
