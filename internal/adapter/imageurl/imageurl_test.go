package imageurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveImage(t *testing.T) {
	r, err := New("https://cdn.example.com", "proj", "production")
	require.NoError(t, err)

	t.Run("AssetRef", func(t *testing.T) {
		got, err := r.ResolveImage("image-a1b2c3-800x600-png")
		require.NoError(t, err)
		assert.Equal(t,
			"https://cdn.example.com/images/proj/production/a1b2c3-800x600.png", got)
	})

	t.Run("AbsoluteURL", func(t *testing.T) {
		got, err := r.ResolveImage("https://img.example.com/x.jpg")
		require.NoError(t, err)
		assert.Equal(t, "https://img.example.com/x.jpg", got)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, ref := range []string{
			"",
			"image",
			"file-a1b2c3-800x600-png",
			"image-a1b2c3-800-png",
			"image-a1b2c3-axb-png",
			"image--800x600-png",
			"image-a1b2c3-800x600-",
		} {
			_, err := r.ResolveImage(ref)
			assert.ErrorIs(t, err, ErrInvalidRef, ref)
		}
	})
}

func TestNew(t *testing.T) {
	_, err := New("cdn.example.com", "proj", "production")
	require.Error(t, err)

	_, err = New("https://cdn.example.com", "", "production")
	require.Error(t, err)
}
