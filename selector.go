package unoscan

import "strings"

// AttributePrefix is the attributify prefix the CSS generator is configured with.
const AttributePrefix = "u-"

// AttributeSelector formats the attributify selector for one utility value:
//
//	AttributeSelector("bg-color", "red") == `[u-bg-color~="red"]`
//
// The value is inserted verbatim. Values containing a double quote are not
// supported and produce a selector the generator will not recognize.
func AttributeSelector(key, value string) string {
	var b strings.Builder
	b.Grow(len(AttributePrefix) + len(key) + len(value) + 6)
	b.WriteByte('[')
	b.WriteString(AttributePrefix)
	b.WriteString(key)
	b.WriteString(`~="`)
	b.WriteString(value)
	b.WriteString(`"]`)
	return b.String()
}

// TransformKey converts a source key (the part after `u_`) into the
// attribute name suffix used in the selector.
func TransformKey(key string, mode KeyMode) string {
	if mode == KeyAllUnderscores {
		return strings.ReplaceAll(key, "_", "-")
	}
	return strings.Replace(key, "_", "-", 1)
}
