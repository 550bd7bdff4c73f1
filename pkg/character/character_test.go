package character

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/sl2"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDecoder(t *testing.T, title sl2.Title, cat items.Catalog) *Decoder {
	t.Helper()
	d, err := NewDecoder(title, cat, discardLogger())
	require.NoError(t, err)
	return d
}

func TestNewDecoderUnsupported(t *testing.T) {
	t.Parallel()

	_, err := NewDecoder(sl2.DS2, nil, nil)
	assert.ErrorIs(t, err, sl2.ErrUnsupportedVariant)
}

func TestDecodeDispatch(t *testing.T) {
	t.Parallel()

	d := newDecoder(t, sl2.DSR, nil)
	rec, err := d.Decode(0, make([]byte, 16))
	require.NoError(t, err)
	assert.Nil(t, rec, "empty slot must decode to a nil interface")

	d = newDecoder(t, sl2.ER, nil)
	rec, err = d.Decode(0, make([]byte, 4))
	require.NoError(t, err)
	assert.Nil(t, rec)
}
