package unoscan

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractScopedClass(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "class list kept verbatim",
			src:  `div { class: "foo bar-baz", "hello" }`,
			want: []string{"foo bar-baz"},
		},
		{
			name: "variants with colon",
			src:  `button { class: "hover:bg-gray-100 md:p-4" }`,
			want: []string{"hover:bg-gray-100 md:p-4"},
		},
		{
			name: "no whitespace around colon",
			src:  `span {class:"text-sm"}`,
			want: []string{"text-sm"},
		},
		{
			name: "unrelated strings ignored",
			src:  `let s = "not a class"; title: "hover-card"`,
			want: []string{},
		},
		{
			name: "key must be exactly class",
			src:  `subclass: "a" u_class: "b"`,
			want: []string{`[u-class~="b"]`},
		},
		{
			name: "duplicate literals collapse",
			src:  `class: "p-4" class: "p-4"`,
			want: []string{"p-4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.src)
			assert.Equal(t, tt.want, got.Sorted())
		})
	}
}

func TestExtractUnscopedClass(t *testing.T) {
	ex := New(Options{ClassMode: ClassUnscoped})

	got := ex.Extract(`let s = "not a class"; title: "hover-card"; x = "a.b"`)
	assert.Equal(t, []string{"hover-card", "not a class"}, got.Sorted())
}

func TestExtractClassOff(t *testing.T) {
	ex := New(Options{ClassMode: ClassOff})

	got := ex.Extract(`class: "p-4" u_m: "2"`)
	assert.Equal(t, []string{`[u-m~="2"]`}, got.Sorted())
}

func TestExtractAttributes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "split values",
			src:  `div { u_bg_color: "red blue" }`,
			want: []string{`[u-bg-color~="blue"]`, `[u-bg-color~="red"]`},
		},
		{
			name: "only first underscore converted",
			src:  `u_my_bg_color: "red"`,
			want: []string{`[u-my-bg_color~="red"]`},
		},
		{
			name: "repeated spaces drop empty tokens",
			src:  `u_x: "a  b"`,
			want: []string{`[u-x~="a"]`, `[u-x~="b"]`},
		},
		{
			name: "whitespace around colon",
			src:  "u_p  :\t\"4\"",
			want: []string{`[u-p~="4"]`},
		},
		{
			name: "tilde and colon in values",
			src:  `u_text: "hover:red ~sm"`,
			want: []string{`[u-text~="hover:red"]`, `[u-text~="~sm"]`},
		},
		{
			name: "unterminated quote yields nothing",
			src:  "u_x: \"a\nu_y: \"b\"",
			want: []string{`[u-y~="b"]`},
		},
		{
			name: "unterminated at end of buffer",
			src:  `u_y: "b" u_x: "a`,
			want: []string{`[u-y~="b"]`},
		},
		{
			name: "spaces-only value yields no selectors",
			src:  `u_p: "   "`,
			want: []string{},
		},
		{
			name: "value with unsupported character",
			src:  `u_w: "1/2"`,
			want: []string{},
		},
		{
			name: "same value in two declarations",
			src:  `u_m: "2" u_m: "2 4"`,
			want: []string{`[u-m~="2"]`, `[u-m~="4"]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.src)
			assert.Equal(t, tt.want, got.Sorted())
		})
	}
}

func TestExtractAttributeWhole(t *testing.T) {
	ex := New(Options{AttributeMode: AttributeWhole})

	got := ex.Extract(`u_bg_color: "red blue"`)
	assert.Equal(t, []string{`[u-bg-color~="red blue"]`}, got.Sorted())
}

func TestExtractAllUnderscores(t *testing.T) {
	ex := New(Options{KeyMode: KeyAllUnderscores})

	got := ex.Extract(`u_my_bg_color: "red"`)
	assert.Equal(t, []string{`[u-my-bg-color~="red"]`}, got.Sorted())
}

func TestExtractMixed(t *testing.T) {
	src := `
rsx!(
    div {
        class: "flex items-center",
        u_p: "4 md:8",
        span { u_text: "sm gray-500", "{user.name}" }
    }
)`
	got := Extract(src)
	assert.Equal(t, []string{
		`[u-p~="4"]`,
		`[u-p~="md:8"]`,
		`[u-text~="gray-500"]`,
		`[u-text~="sm"]`,
		"flex items-center",
	}, got.Sorted())
}

func TestExtractNoMatches(t *testing.T) {
	inputs := []string{
		"",
		"Just some plain prose, with no markup at all.",
		`"quoted" but "not" scoped`,
		`u_: "x"`,
	}
	for _, src := range inputs {
		got := Extract(src)
		require.NotNil(t, got)
		assert.Equal(t, 0, got.Len(), "input %q", src)
	}
}

func TestScanOrderAndOffsets(t *testing.T) {
	src := `u_m: "2" class: "p-4" u_bg: "red blue"`
	got := New(DefaultOptions()).Scan(src)
	require.Len(t, got, 3)

	assert.Equal(t, KindAttribute, got[0].Kind)
	assert.Equal(t, 0, got[0].Offset)
	assert.Equal(t, "m", got[0].Key)

	assert.Equal(t, KindClass, got[1].Kind)
	assert.Equal(t, strings.Index(src, "class"), got[1].Offset)
	assert.Equal(t, []string{"p-4"}, got[1].Selectors)

	assert.Equal(t, KindAttribute, got[2].Kind)
	assert.Equal(t, `u_bg: "red blue"`, got[2].Raw)
	assert.Equal(t, "red blue", got[2].Value)
	assert.Equal(t, []string{`[u-bg~="red"]`, `[u-bg~="blue"]`}, got[2].Selectors)
}

func TestScanSpacesOnlyValue(t *testing.T) {
	got := New(DefaultOptions()).Scan(`u_p: "   " u_m: "2"`)
	require.Len(t, got, 2)

	// The declaration is still reported, it just contributes nothing
	assert.Equal(t, KindAttribute, got[0].Kind)
	assert.Equal(t, "p", got[0].Key)
	assert.Equal(t, "   ", got[0].Value)
	assert.Empty(t, got[0].Selectors)
	assert.Equal(t, []string{`[u-m~="2"]`}, got[1].Selectors)

	whole := New(Options{AttributeMode: AttributeWhole}).Scan(`u_p: "   "`)
	require.Len(t, whole, 1)
	assert.Equal(t, []string{`[u-p~="   "]`}, whole[0].Selectors)
}

func TestExtractDeterministic(t *testing.T) {
	src := `class: "a b" u_x: "1 2 3" u_y_z: "q" class: "c"`
	first := Extract(src)
	for i := 0; i < 20; i++ {
		again := Extract(src)
		require.True(t, first.Equal(again))
		require.Equal(t, first.Sorted(), again.Sorted())
	}
}

func TestExtractConcurrentIsolation(t *testing.T) {
	blobs := make([]string, 32)
	for i := range blobs {
		blobs[i] = fmt.Sprintf(`class: "c-%d" u_m_x: "%d %d" plain text`, i, i, i+100)
	}

	baseline := make([]ResultSet, len(blobs))
	for i, b := range blobs {
		baseline[i] = Extract(b)
	}

	ex := New(DefaultOptions())
	var wg sync.WaitGroup
	results := make([][]ResultSet, 8)
	for w := range results {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			out := make([]ResultSet, len(blobs))
			for i, b := range blobs {
				out[i] = ex.Extract(b)
			}
			results[w] = out
		}(w)
	}
	wg.Wait()

	for _, out := range results {
		for i := range blobs {
			require.True(t, baseline[i].Equal(out[i]), "blob %d", i)
		}
	}
}
