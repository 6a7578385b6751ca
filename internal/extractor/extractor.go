package extractor

import (
	"strings"

	"github.com/mcncl/jsonsieve/internal/locator"
	"github.com/mcncl/jsonsieve/internal/models"
	"github.com/mcncl/jsonsieve/internal/normalizer"
	"github.com/mcncl/jsonsieve/internal/parser"
)

// BalancedBlock returns the minimal substring of text that starts at start
// (which must index the opening delimiter) and ends at the matching closing
// delimiter, inclusive. Delimiters inside double-quoted strings do not count
// toward the depth, and a backslash causes the following character to be
// ignored entirely. The second return is false when the block never closes.
func BalancedBlock(text string, start int, open, close byte) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// ExtractString locates a JSON-like value inside text and decodes it.
// Strategies are tried in order:
//
//  1. the whole trimmed string, when it already starts like a JSON value
//  2. the right-hand side of the first '=' assignment
//  3. the first balanced {...} block anywhere in the text, then [...]
//
// Text containing nothing JSON-like yields (nil, nil). A block that was
// located but still fails strict decoding after normalization returns the
// decode error; absence is quiet, broken structure is loud.
func ExtractString(text string) (models.Value, error) {
	trimmed := strings.TrimSpace(text)

	if normalizer.LooksLikeJSON(trimmed) {
		return parser.Decode(normalizer.Normalize(trimmed))
	}

	if block, ok := assignmentBlock(trimmed); ok {
		return parser.Decode(normalizer.Normalize(block))
	}

	for _, pair := range [...]struct{ open, close byte }{{'{', '}'}, {'[', ']'}} {
		start := strings.IndexByte(trimmed, pair.open)
		if start < 0 {
			continue
		}
		if block, ok := BalancedBlock(trimmed, start, pair.open, pair.close); ok {
			return parser.Decode(normalizer.Normalize(block))
		}
	}

	return nil, nil
}

// assignmentBlock handles inputs like "var data = {...};": the candidate is
// the balanced block starting at the first '{' or '[' after the first '='.
func assignmentBlock(text string) (string, bool) {
	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		return "", false
	}
	i := eq + 1
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i >= len(text) {
		return "", false
	}
	switch text[i] {
	case '{':
		return BalancedBlock(text, i, '{', '}')
	case '[':
		return BalancedBlock(text, i, '[', ']')
	}
	return "", false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Extract accepts either raw text or an already-decoded value. String input
// goes through the full extraction pipeline; anything else is assumed to be
// a decoded value and is returned unchanged.
func Extract(input any) (models.Value, error) {
	if text, ok := input.(string); ok {
		return ExtractString(text)
	}
	return input, nil
}

// Find extracts a value from input and collects every object that directly
// owns key. The return shape depends on the match count: no matches yield an
// empty models.Array, a single match yields that *models.Object bare, and
// multiple matches yield a models.Array of the objects in pre-order. Input
// containing nothing JSON-like folds into the empty-array case; a decode
// failure on a located block is returned instead.
func Find(input any, key string) (any, error) {
	root, err := Extract(input)
	if err != nil {
		return nil, err
	}

	matches := locator.FindKey(root, key)
	switch len(matches) {
	case 0:
		return models.Array{}, nil
	case 1:
		return matches[0], nil
	default:
		result := make(models.Array, len(matches))
		for i, match := range matches {
			result[i] = match
		}
		return result, nil
	}
}
