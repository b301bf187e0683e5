package tracking

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/niksmo/marketplace/internal/core/port"
)

var _ port.TrackingGenerator = (*Generator)(nil)

const randomLen = 12

// A Generator mints tracking numbers as the prefix
// followed by 12 uppercase hex digits of a random UUID.
type Generator struct {
	prefix string
}

func NewGenerator(prefix string) Generator {
	return Generator{strings.ToUpper(prefix)}
}

func (g Generator) NewTrackingNumber() (string, error) {
	const op = "Generator.NewTrackingNumber"

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	random := strings.ToUpper(hex.EncodeToString(id[:]))[:randomLen]
	return g.prefix + random, nil
}
