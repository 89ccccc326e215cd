package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadings(t *testing.T) {
	var l Loadings
	require.False(t, l.Any())
	l.Start("b")
	l.Start("a")
	require.True(t, l.IsLoading("a"))
	require.Equal(t, []string{"a", "b"}, l.Names())
	l.Finish("a")
	l.Finish("b")
	require.False(t, l.Any())
}
