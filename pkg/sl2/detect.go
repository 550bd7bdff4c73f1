package sl2

import (
	"fmt"
	"slices"
)

// DS3EntrySize is the declared size of entry 1 in a base-game DS3 save.
const DS3EntrySize = 786480

type detectConfig struct {
	ds3Sizes []uint64
}

// DetectOption configures Detect.
type DetectOption func(*detectConfig)

// WithDS3Sizes adds entry sizes that identify DS3 saves, such as those
// written by DLC builds.
func WithDS3Sizes(sizes ...uint64) DetectOption {
	return func(c *detectConfig) {
		c.ds3Sizes = append(c.ds3Sizes, sizes...)
	}
}

// Detect identifies the title that wrote c from its entry count and, for
// twelve-entry containers, the declared size of entry 1.
func Detect(c *Container, opts ...DetectOption) (Title, error) {
	cfg := detectConfig{ds3Sizes: []uint64{DS3EntrySize}}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch n := len(c.Entries); n {
	case 11:
		return DSR, nil
	case 23:
		return DS2, nil
	case 12:
		size := c.Entries[1].Header.Size
		if slices.Contains(cfg.ds3Sizes, size) {
			return DS3, nil
		}
		return ER, nil
	default:
		return TitleUnknown, fmt.Errorf("%w: %d entries", ErrUnsupportedVariant, n)
	}
}
