package unoscan

import (
	"regexp"
	"sort"
	"strings"
)

// Kind distinguishes the two usage syntaxes.
type Kind int

const (
	// KindClass is a class-list string literal.
	KindClass Kind = iota
	// KindAttribute is a `u_key: "values"` declaration.
	KindAttribute
)

func (k Kind) String() string {
	if k == KindAttribute {
		return "attribute"
	}
	return "class"
}

// Match is one usage found in a source blob.
type Match struct {
	Kind      Kind
	Offset    int      // byte offset of the match start
	Raw       string   // full matched text, e.g. `u_bg: "red blue"`
	Key       string   // transformed attribute key, empty for KindClass
	Value     string   // captured value, verbatim
	Selectors []string // selectors this match contributes, in value order
}

var (
	// Class lists: word characters, space, hyphen and colon
	unscopedClassPattern = regexp.MustCompile(`"([\w :-]+)"`)
	scopedClassPattern   = regexp.MustCompile(`\bclass\s*:\s*"([\w :-]+)"`)

	// Attribute declarations: u_<key> : "<values>". \w already covers '_'.
	// Values additionally accept '~'.
	attributePattern = regexp.MustCompile(`u_(\w+)\s*:\s*"([\w :~-]+)"`)
)

// Extractor recovers selectors from source text. It is immutable once built
// and safe for concurrent use.
type Extractor struct {
	opts Options
}

// New returns an Extractor for the given options.
func New(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

var defaultExtractor = New(DefaultOptions())

// Extract runs the default extractor over blob.
func Extract(blob string) ResultSet {
	return defaultExtractor.Extract(blob)
}

// Options returns the options the extractor was built with.
func (e *Extractor) Options() Options {
	return e.opts
}

// Extract returns every selector found in blob. Input that matches neither
// syntax yields an empty set.
func (e *Extractor) Extract(blob string) ResultSet {
	set := make(ResultSet)
	for _, m := range e.Scan(blob) {
		for _, sel := range m.Selectors {
			set.Add(sel)
		}
	}
	return set
}

// Scan returns every match in blob ordered by offset. The same selector may
// appear in several matches; Extract deduplicates.
func (e *Extractor) Scan(blob string) []Match {
	matches := e.scanClasses(blob)
	matches = append(matches, e.scanAttributes(blob)...)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Offset < matches[j].Offset
	})
	return matches
}

// scanClasses finds class-list literals. The captured text is the selector.
func (e *Extractor) scanClasses(blob string) []Match {
	var re *regexp.Regexp
	switch e.opts.ClassMode {
	case ClassScoped:
		re = scopedClassPattern
	case ClassUnscoped:
		re = unscopedClassPattern
	default:
		return nil
	}

	var matches []Match
	for _, idx := range re.FindAllStringSubmatchIndex(blob, -1) {
		if len(idx) < 4 {
			continue
		}
		value := blob[idx[2]:idx[3]]
		matches = append(matches, Match{
			Kind:      KindClass,
			Offset:    idx[0],
			Raw:       blob[idx[0]:idx[1]],
			Value:     value,
			Selectors: []string{value},
		})
	}
	return matches
}

// scanAttributes finds `u_key: "values"` declarations.
func (e *Extractor) scanAttributes(blob string) []Match {
	var matches []Match
	for _, idx := range attributePattern.FindAllStringSubmatchIndex(blob, -1) {
		if len(idx) < 6 {
			continue
		}
		key := TransformKey(blob[idx[2]:idx[3]], e.opts.KeyMode)
		value := blob[idx[4]:idx[5]]

		var selectors []string
		if e.opts.AttributeMode == AttributeWhole {
			selectors = []string{AttributeSelector(key, value)}
		} else {
			// Fields drops the empty tokens left by repeated spaces; a spaces-only
			// value contributes no selectors but the match is still reported
			for _, v := range strings.Fields(value) {
				selectors = append(selectors, AttributeSelector(key, v))
			}
		}

		matches = append(matches, Match{
			Kind:      KindAttribute,
			Offset:    idx[0],
			Raw:       blob[idx[0]:idx[1]],
			Key:       key,
			Value:     value,
			Selectors: selectors,
		})
	}
	return matches
}
