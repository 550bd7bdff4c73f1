package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falk/sl2-go/internal/testsave"
	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/keys"
	"github.com/falk/sl2-go/pkg/save"
	"github.com/falk/sl2-go/pkg/sl2"
	"github.com/falk/sl2-go/pkg/zstd"
)

func decodedSave(t *testing.T) *save.Save {
	t.Helper()

	contents := make([][]byte, 11)
	for i := range contents {
		contents[i] = []byte{0}
	}
	contents[4] = testsave.DSRSlot{
		Name:  "Andre",
		Level: 99,
		Souls: 10,
		Items: []testsave.Item{
			{Type: items.TypeWeapon, ID: 200015, Amount: 1},
			{Type: items.TypeGoods, ID: 380, Amount: 5},
		},
	}.Bytes()

	es := make([]testsave.Entry, len(contents))
	for i, c := range contents {
		es[i] = testsave.Entry{Name: fmt.Sprintf("USER_DATA%03d", i), Content: c}
	}
	data := testsave.Build(es, testsave.Options{Key: keys.Default().Get(keys.DSR)})

	cat := items.Table{{TypeCode: items.TypeWeapon, BaseID: 200000}: {Name: "Dagger", Category: items.CategoryWeaponsShields}}
	s, err := save.Decode(context.Background(), data,
		save.WithCatalog(sl2.DSR, cat),
		save.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return s
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	sum := Summarize(decodedSave(t))
	assert.Equal(t, "DSR", sum.Title)
	assert.Equal(t, 11, sum.Entries)
	require.Len(t, sum.Characters, 1)

	ch := sum.Characters[0]
	assert.Equal(t, 4, ch.Slot)
	assert.Equal(t, "Andre", ch.Name)
	assert.Equal(t, uint32(99), ch.Level)
	assert.Equal(t, 1, ch.UnknownItems)
	assert.Equal(t, []Item{
		{ID: 200015, Name: "Dagger", Category: items.CategoryWeaponsShields, Upgrade: 15, Amount: 1},
		{ID: 380, Name: "Unknown 380", Category: items.CategoryConsumables, Amount: 5, Unknown: true},
	}, ch.Items)
}

func TestMarshalRoundTripAndDeterminism(t *testing.T) {
	t.Parallel()

	sum := Summarize(decodedSave(t))
	sum.SlotErrors = map[int]string{7: "entry 7: bad", 2: "entry 2: bad"}

	a, err := Marshal(sum)
	require.NoError(t, err)
	b, err := Marshal(sum)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	got, err := Unmarshal(a)
	require.NoError(t, err)
	assert.Equal(t, sum, got)
}

func TestUnmarshalRejectsOtherVersions(t *testing.T) {
	t.Parallel()

	raw, err := cbor.Marshal(Summary{Version: Version + 1})
	require.NoError(t, err)
	_, err = Unmarshal(zstd.Compress(raw, zstd.DefaultLevel))
	assert.ErrorIs(t, err, ErrVersion)

	_, err = Unmarshal([]byte("garbage"))
	assert.Error(t, err)
}
