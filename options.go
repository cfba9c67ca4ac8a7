package unoscan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a mode name cannot be parsed.
var ErrUnknownMode = errors.New("unknown mode")

// ClassMode selects how class-list string literals are recognized.
type ClassMode int

const (
	// ClassScoped matches only quoted values of a `class:` key.
	ClassScoped ClassMode = iota
	// ClassUnscoped matches any quoted run of class characters (legacy, over-matches).
	ClassUnscoped
	// ClassOff disables class-literal matching.
	ClassOff
)

// AttributeMode selects how `u_key: "..."` values are turned into selectors.
type AttributeMode int

const (
	// AttributeSplit emits one selector per whitespace-separated value.
	AttributeSplit AttributeMode = iota
	// AttributeWhole emits a single selector with the whole value (legacy).
	AttributeWhole
)

// KeyMode selects how underscores in an attribute key become hyphens.
type KeyMode int

const (
	// KeyFirstUnderscore replaces only the first underscore: my_bg_color -> my-bg_color.
	KeyFirstUnderscore KeyMode = iota
	// KeyAllUnderscores replaces every underscore: my_bg_color -> my-bg-color.
	KeyAllUnderscores
)

// Options configures an Extractor. The zero value is the default behavior.
type Options struct {
	ClassMode     ClassMode
	AttributeMode AttributeMode
	KeyMode       KeyMode
}

// DefaultOptions returns scoped class matching, splitting attribute values
// and first-underscore key conversion.
func DefaultOptions() Options {
	return Options{}
}

var classModeNames = map[ClassMode]string{
	ClassScoped:   "scoped",
	ClassUnscoped: "unscoped",
	ClassOff:      "off",
}

var attributeModeNames = map[AttributeMode]string{
	AttributeSplit: "split",
	AttributeWhole: "whole",
}

var keyModeNames = map[KeyMode]string{
	KeyFirstUnderscore: "first",
	KeyAllUnderscores:  "all",
}

func (m ClassMode) String() string {
	if s, ok := classModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("ClassMode(%d)", int(m))
}

func (m AttributeMode) String() string {
	if s, ok := attributeModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("AttributeMode(%d)", int(m))
}

func (m KeyMode) String() string {
	if s, ok := keyModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("KeyMode(%d)", int(m))
}

// ParseClassMode parses "scoped", "unscoped" or "off". Empty means scoped.
func ParseClassMode(s string) (ClassMode, error) {
	return parseMode(s, classModeNames, "class")
}

// ParseAttributeMode parses "split" or "whole". Empty means split.
func ParseAttributeMode(s string) (AttributeMode, error) {
	return parseMode(s, attributeModeNames, "attribute")
}

// ParseKeyMode parses "first" or "all". Empty means first.
func ParseKeyMode(s string) (KeyMode, error) {
	return parseMode(s, keyModeNames, "key")
}

func parseMode[M comparable](s string, names map[M]string, kind string) (M, error) {
	var zero M
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zero, nil
	}
	for m, name := range names {
		if name == s {
			return m, nil
		}
	}
	return zero, fmt.Errorf("%s mode %q: %w", kind, s, ErrUnknownMode)
}
