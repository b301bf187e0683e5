package tracking

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingNumber(t *testing.T) {
	g := NewGenerator("trk")
	format := regexp.MustCompile(`^TRK[0-9A-F]{12}$`)

	seen := make(map[string]struct{})
	for range 100 {
		n, err := g.NewTrackingNumber()
		require.NoError(t, err)
		assert.Regexp(t, format, n)
		seen[n] = struct{}{}
	}
	assert.Len(t, seen, 100)
}
