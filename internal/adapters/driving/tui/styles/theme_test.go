package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()
	require.NotNil(t, s)
	assert.NotNil(t, s.Theme())
}

func TestNewStyles_NilThemeFallsBack(t *testing.T) {
	s := NewStyles(nil)
	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}
