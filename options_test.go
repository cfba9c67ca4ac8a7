package unoscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModes(t *testing.T) {
	cm, err := ParseClassMode("Unscoped")
	require.NoError(t, err)
	assert.Equal(t, ClassUnscoped, cm)

	cm, err = ParseClassMode("")
	require.NoError(t, err)
	assert.Equal(t, ClassScoped, cm)

	am, err := ParseAttributeMode(" whole ")
	require.NoError(t, err)
	assert.Equal(t, AttributeWhole, am)

	km, err := ParseKeyMode("all")
	require.NoError(t, err)
	assert.Equal(t, KeyAllUnderscores, km)

	_, err = ParseClassMode("loose")
	require.ErrorIs(t, err, ErrUnknownMode)
	assert.Contains(t, err.Error(), `class mode "loose"`)

	_, err = ParseAttributeMode("splitting")
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "scoped", ClassScoped.String())
	assert.Equal(t, "off", ClassOff.String())
	assert.Equal(t, "split", AttributeSplit.String())
	assert.Equal(t, "first", KeyFirstUnderscore.String())
	assert.Equal(t, "ClassMode(9)", ClassMode(9).String())
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, ClassScoped, opts.ClassMode)
	assert.Equal(t, AttributeSplit, opts.AttributeMode)
	assert.Equal(t, KeyFirstUnderscore, opts.KeyMode)
	assert.Equal(t, opts, New(opts).Options())
}
