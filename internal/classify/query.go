package classify

import (
	"regexp"
	"strings"
)

// Query sub-classification patterns, precompiled for reuse.
var (
	reURLPath      = regexp.MustCompile(`/\w+/\{?\w+\}?`)
	reFieldPrefix  = regexp.MustCompile(`^\w+:`)
	reSpecialChars = regexp.MustCompile(`[:\[\]{}]`)
)

// complexPhraseTokens is the token count above which an unquoted query is
// considered a multi-word phrase.
const complexPhraseTokens = 3

// ClassifyQuery assigns a failed query string to a syntax subcategory by
// first match. Total: every input, including the empty string, yields
// exactly one subcategory.
func ClassifyQuery(query string) string {
	// URL-path-like shapes, e.g. /users/{id}/roles.
	if reURLPath.MatchString(query) {
		return "url_pattern"
	}

	// Annotation detection looks only at the first token; an empty or
	// whitespace-only query has no tokens and falls through.
	tokens := strings.Fields(query)
	if strings.Contains(query, "@Router") || (len(tokens) > 0 && strings.Contains(tokens[0], "@")) {
		return "annotation"
	}

	if strings.Contains(query, ":=") {
		return "assignment"
	}

	if reFieldPrefix.MatchString(query) {
		return "field_prefix"
	}

	if reSpecialChars.MatchString(query) {
		return "special_chars"
	}

	if len(tokens) > complexPhraseTokens {
		return "complex_phrase"
	}

	return "other"
}
