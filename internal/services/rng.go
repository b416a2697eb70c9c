package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	mrand "math/rand"

	"github.com/SebastianoFazzino/number-game/internal/models"
)

var ErrRandomSource = errors.New("random source unavailable")

// Drawer produces the house number for a round. Implementations must be safe
// for concurrent use and return values in [models.MinNumber, models.MaxNumber].
type Drawer interface {
	Draw() (int, error)
}

// SecureDrawer draws from a cryptographic source. It keeps no state between
// calls, so concurrent draws are independent.
type SecureDrawer struct {
	reader io.Reader
}

func NewSecureDrawer() *SecureDrawer {
	return &SecureDrawer{reader: rand.Reader}
}

// NewSecureDrawerFrom uses r instead of crypto/rand.Reader.
func NewSecureDrawerFrom(r io.Reader) *SecureDrawer {
	return &SecureDrawer{reader: r}
}

func (d *SecureDrawer) Draw() (int, error) {
	span := big.NewInt(models.MaxNumber - models.MinNumber + 1)

	n, err := rand.Int(d.reader, span)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	return int(n.Int64()) + models.MinNumber, nil
}

// FastDrawer uses the runtime-seeded math/rand/v2 generator, which is safe
// for concurrent use. Suited to bulk simulation, not to real money.
type FastDrawer struct{}

func NewFastDrawer() *FastDrawer {
	return &FastDrawer{}
}

func (FastDrawer) Draw() (int, error) {
	return mrand.Intn(models.MaxNumber-models.MinNumber+1) + models.MinNumber, nil
}

// NewDrawer picks a drawer by its configured name.
func NewDrawer(source string) (Drawer, error) {
	switch source {
	case "crypto", "":
		return NewSecureDrawer(), nil
	case "fast":
		return NewFastDrawer(), nil
	default:
		return nil, fmt.Errorf("unknown random source: %s", source)
	}
}
