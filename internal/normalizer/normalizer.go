package normalizer

import (
	"regexp"
	"strings"
)

var (
	// Identifier-style keys sitting after '{' or ',' and before ':'.
	unquotedKeyPattern = regexp.MustCompile(`([{,]\s*)([A-Za-z_$][A-Za-z0-9_$]*)(\s*:)`)
	// A comma followed by nothing but whitespace and a closing bracket.
	trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)
)

// LooksLikeJSON reports whether s, already trimmed of leading whitespace,
// starts like a JSON value: an object, array or string opener, one of the
// bare literals, or a number.
func LooksLikeJSON(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '{', '[', '"':
		return true
	}
	if strings.HasPrefix(s, "true") || strings.HasPrefix(s, "false") || strings.HasPrefix(s, "null") {
		return true
	}
	if s[0] == '-' {
		return len(s) > 1 && isDigit(s[1])
	}
	return isDigit(s[0])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Normalize rewrites JavaScript-object-literal leniencies into strict JSON:
// single-quoted strings become double-quoted with their escapes adjusted,
// unquoted identifier keys are wrapped in quotes, and trailing commas are
// dropped. Already-strict JSON passes through unchanged. Input broken beyond
// these rules stays broken; the decoder is the one that reports it.
//
// The quote conversion is a single left-to-right scan, so the two regex
// passes afterwards only ever see double-quoted strings. The key-quoting
// pass is a plain textual rewrite and cannot tell whether a `{x:` or `,x:`
// it matches sits inside a string body; that narrow case is a long-standing
// limitation of this pipeline and is deliberately left as-is.
func Normalize(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			// Single-quoted run: re-emit as a double-quoted string. The run
			// ends at a bare closing quote or at the end of the input; an
			// unterminated run is left unterminated.
			out.WriteByte('"')
			i++
			for i < len(s) {
				c := s[i]
				if c == '\\' && i+1 < len(s) {
					switch next := s[i+1]; next {
					case '\'':
						out.WriteByte('\'') // \' has no meaning in a JSON string
					case '"':
						out.WriteString(`\"`)
					default:
						out.WriteByte(c)
						out.WriteByte(next)
					}
					i += 2
					continue
				}
				if c == '"' {
					// A bare double quote must survive inside the now
					// double-quoted string.
					out.WriteString(`\"`)
					i++
					continue
				}
				if c == '\'' {
					out.WriteByte('"')
					break
				}
				out.WriteByte(c)
				i++
			}
		case '"':
			// Double-quoted run: already strict, copy verbatim including
			// escape pairs. Content is never reinterpreted.
			out.WriteByte('"')
			i++
			for i < len(s) {
				c := s[i]
				if c == '\\' && i+1 < len(s) {
					out.WriteByte(c)
					out.WriteByte(s[i+1])
					i += 2
					continue
				}
				out.WriteByte(c)
				if c == '"' {
					break
				}
				i++
			}
		default:
			out.WriteByte(s[i])
		}
	}

	normalized := unquotedKeyPattern.ReplaceAllString(out.String(), `${1}"${2}"${3}`)
	return trailingCommaPattern.ReplaceAllString(normalized, "${1}")
}
