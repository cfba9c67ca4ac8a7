// Package stylesheet indexes generated CSS so extracted selectors can be
// checked against the rules the generator actually emitted.
//
// A selector the generator does not recognize produces no rule and no error.
// Comparing the extracted set with the generated stylesheet turns that silent
// mismatch into a reportable one.
package stylesheet

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/unoscan"
)

// Index holds the class and attribute selectors present in a stylesheet.
type Index struct {
	classes    map[string]bool // unescaped class names: "hover:bg-red"
	attributes map[string]bool // normalized: [u-bg~="red"]
}

// Parse lexes CSS content and collects class and `~=` attribute selectors.
func Parse(content string) *Index {
	idx := &Index{
		classes:    make(map[string]bool),
		attributes: make(map[string]bool),
	}

	lexer := css.NewLexer(parse.NewInputString(content))
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}

		switch {
		case tt == css.DelimToken && len(text) > 0 && text[0] == '.':
			tt2, name := lexer.Next()
			if tt2 == css.IdentToken {
				idx.classes[unescape(string(name))] = true
			}
		case tt == css.LeftBracketToken:
			if sel, ok := readAttribute(lexer); ok {
				idx.attributes[sel] = true
			}
		}
	}

	return idx
}

// ParseFile reads and indexes a CSS file.
func ParseFile(path string) (*Index, error) {
	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	return Parse(string(content)), nil
}

// readAttribute consumes tokens up to the closing bracket and returns the
// normalized selector for `[name~="value"]` forms.
func readAttribute(lexer *css.Lexer) (string, bool) {
	var name, value string
	include := false

	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return "", false
		case css.WhitespaceToken:
			continue
		case css.IdentToken:
			if !include {
				name = unescape(string(text))
			} else {
				// unquoted value: [u-p~=4]
				value = unescape(string(text))
			}
		case css.IncludeMatchToken:
			include = true
		case css.StringToken:
			value = unescape(unquote(string(text)))
		case css.RightBracketToken:
			if name == "" || !include {
				return "", false
			}
			name = strings.TrimPrefix(name, unoscan.AttributePrefix)
			return unoscan.AttributeSelector(name, value), true
		default:
			// Other operators (=, ^=, ...) or numbers in unquoted values
			if include && value == "" {
				value = unescape(string(text))
			}
		}
	}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// unescape resolves CSS backslash escapes: `hover\:bg-red` -> `hover:bg-red`.
// Hex escapes (`\3a `) decode to their code point.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		j := i
		var r rune
		for j < len(s) && j-i < 6 && isHex(s[j]) {
			r = r*16 + rune(hexVal(s[j]))
			j++
		}
		if j > i {
			b.WriteRune(r)
			// A single whitespace terminates a hex escape
			if j < len(s) && s[j] == ' ' {
				j++
			}
			i = j - 1
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// Covers reports whether the stylesheet contains a rule for sel.
// Attribute selectors must be present exactly. Class lists are covered when
// every class in the list has a rule.
func (idx *Index) Covers(sel string) bool {
	if strings.HasPrefix(sel, "[") {
		return idx.attributes[sel]
	}
	fields := strings.Fields(sel)
	if len(fields) == 0 {
		return false
	}
	for _, class := range fields {
		if !idx.classes[class] {
			return false
		}
	}
	return true
}

// Missing returns the selectors of set with no rule, sorted.
func (idx *Index) Missing(set unoscan.ResultSet) []string {
	var missing []string
	for _, sel := range set.Sorted() {
		if !idx.Covers(sel) {
			missing = append(missing, sel)
		}
	}
	return missing
}

// Classes returns the indexed class names, sorted.
func (idx *Index) Classes() []string {
	return sortedKeys(idx.classes)
}

// Attributes returns the indexed attribute selectors, sorted.
func (idx *Index) Attributes() []string {
	return sortedKeys(idx.attributes)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
