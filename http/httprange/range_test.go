package httprange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("single span", func(t *testing.T) {
		set, err := Parse("bytes=0-63")
		require.NoError(t, err)
		require.Len(t, set, 1)
		assert.Equal(t, Range{From: 0, To: 63}, set[0])
		assert.False(t, set.Multipart())
		assert.Equal(t, int64(64), set[0].Length())
	})

	t.Run("multiple spans", func(t *testing.T) {
		set, err := Parse("bytes=0-10, 20-30")
		require.NoError(t, err)
		require.Len(t, set, 2)
		assert.Equal(t, Range{From: 20, To: 30}, set[1])
		assert.True(t, set.Multipart())
	})

	t.Run("malformed", func(t *testing.T) {
		for _, header := range []string{
			"0-63",
			"lines=0-63",
			"bytes=63",
			"bytes=a-b",
			"bytes=10-",
			"bytes=-10",
			"bytes=63-0",
			"bytes=5-5",
		} {
			_, err := Parse(header)
			assert.ErrorIs(t, err, ErrMalformed, header)
		}
	})
}
