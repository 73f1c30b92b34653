package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransform_SuccessCarriesStatusOne(t *testing.T) {
	out, ok := Transform([]byte("const x = 1;"), []byte("virtual.ts"))
	require.True(t, ok)
	require.NotEmpty(t, out)
	require.Equal(t, byte('1'), out[len(out)-1])

	payload := out[:len(out)-1]
	require.Contains(t, string(payload), "(function(exports,require,module){")
}

func TestTransform_FailureCarriesStatusTwo(t *testing.T) {
	out, ok := Transform([]byte("const x = ;"), []byte("virtual.ts"))
	require.False(t, ok)
	require.NotEmpty(t, out)
	require.Equal(t, byte('2'), out[len(out)-1])
}

func TestTransform_UnsupportedConstructCarriesStatusTwo(t *testing.T) {
	out, ok := Transform([]byte("enum Color { Red }"), []byte("virtual.ts"))
	require.False(t, ok)
	require.Equal(t, byte('2'), out[len(out)-1])
}
