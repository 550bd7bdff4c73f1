package sl2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// containerWithSizes builds a parsed container whose entry i declares sizes[i].
func containerWithSizes(sizes ...uint64) *Container {
	c := &Container{}
	for i, s := range sizes {
		c.Entries = append(c.Entries, &Entry{Index: i, Header: EntryHeader{Size: s}})
	}
	c.Header.EntryCount = uint32(len(sizes))
	return c
}

func sized(n int, entry1 uint64) *Container {
	sizes := make([]uint64, n)
	for i := range sizes {
		sizes[i] = 1024
	}
	if n > 1 {
		sizes[1] = entry1
	}
	return containerWithSizes(sizes...)
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    *Container
		opts []DetectOption
		want Title
	}{
		{"eleven entries", sized(11, 0), nil, DSR},
		{"twenty-three entries", sized(23, 0), nil, DS2},
		{"twelve entries with DS3 size", sized(12, DS3EntrySize), nil, DS3},
		{"twelve entries with other size", sized(12, 12345), nil, ER},
		{"twelve entries with configured size", sized(12, 786496), []DetectOption{WithDS3Sizes(786496)}, DS3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.c, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectUnsupported(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 10, 13, 24} {
		_, err := Detect(sized(n, 0))
		assert.ErrorIs(t, err, ErrUnsupportedVariant, "entries=%d", n)
	}
}

func TestTitleKeys(t *testing.T) {
	t.Parallel()

	assert.True(t, DSR.Encrypted())
	assert.True(t, DS2.Encrypted())
	assert.True(t, DS3.Encrypted())
	assert.False(t, ER.Encrypted())
	assert.Equal(t, "ER", ER.String())
	assert.Equal(t, 11, DSR.EntryCount())
	assert.Equal(t, 23, DS2.EntryCount())
}
