package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falk/sl2-go/internal/testsave"
	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/sl2"
)

func dsrCatalog() items.Table {
	return items.Table{
		{TypeCode: items.TypeWeapon, BaseID: 200000}: {Name: "Dagger", Category: items.CategoryWeaponsShields},
		{TypeCode: items.TypeArmor, BaseID: 10000}:   {Name: "Catarina Helm", Category: items.CategoryArmor},
		{TypeCode: items.TypeGoods, BaseID: 3000}:    {Name: "Soul Arrow", Category: items.CategorySpells},
	}
}

func TestDSRSlotLayout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, testsave.DSRSlotSize, DSRSlotSize)
}

func TestDSR(t *testing.T) {
	t.Parallel()

	content := testsave.DSRSlot{
		Name:  "Solaire",
		Level: 42,
		Souls: 1234,
		HP:    800,
		Class: 1,
		Items: []testsave.Item{
			{Type: items.TypeWeapon, ID: 200405, Amount: 1, Durability: 80},
			{ID: testsave.EmptyID},
			{Type: items.TypeGoods, ID: 2500, Amount: 3},
			{Type: items.TypeWeapon, ID: 900000, Amount: 1},
		},
		Attuned: []uint32{3000},
		Box: []testsave.Item{
			{ID: items.TypeArmor + 10000, Amount: 1, Durability: 300},
			{ID: testsave.EmptyID, Amount: 1},
		},
	}.Bytes()

	r, err := newDecoder(t, sl2.DSR, dsrCatalog()).DSR(3, content)
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Equal(t, sl2.DSR, r.Title())
	assert.Equal(t, 3, r.Slot)
	assert.Equal(t, "Solaire", r.Name)
	assert.Equal(t, uint32(42), r.Level)
	assert.Equal(t, uint32(1234), r.Souls)
	assert.Equal(t, Vitals{800, 800, 800}, r.HP)
	assert.Equal(t, "Knight", r.ClassName())
	assert.Equal(t, uint32(4), r.MaxInventoryCount)

	require.Len(t, r.Items, 2)
	dagger := r.Items[0]
	assert.Equal(t, "Dagger", dagger.Entry.Name)
	assert.Equal(t, uint32(200000), dagger.BaseID)
	assert.Equal(t, uint32(4), dagger.Infusion)
	assert.Equal(t, uint32(5), dagger.Upgrade)
	assert.Equal(t, uint32(80), dagger.Durability)
	assert.False(t, dagger.Unknown)

	unknown := r.Items[1]
	assert.True(t, unknown.Unknown)
	assert.Equal(t, 2, unknown.Slot)
	assert.Equal(t, uint32(3), unknown.Amount)
	assert.Equal(t, items.CategoryKeyItems, unknown.Entry.Category)
	assert.Equal(t, 1, r.UnknownItems)

	require.Len(t, r.Attunement, 1)
	assert.Equal(t, "Soul Arrow", r.Attunement[0].Entry.Name)

	require.Len(t, r.Storage, 1)
	helm := r.Storage[0]
	assert.True(t, helm.DeepStorage)
	assert.Equal(t, items.TypeArmor, helm.TypeCode)
	assert.Equal(t, "Catarina Helm", helm.Entry.Name)
	assert.Equal(t, items.TypeArmor+10000, helm.SourceID)
}

func TestDSREmptySlot(t *testing.T) {
	t.Parallel()

	content := testsave.DSRSlot{Name: "ghost", Level: 9}.Bytes()
	content[0] = 0

	r, err := newDecoder(t, sl2.DSR, nil).DSR(0, content)
	require.NoError(t, err)
	assert.Nil(t, r)

	// Even a short buffer is empty, not malformed, when the flag is clear.
	r, err = newDecoder(t, sl2.DSR, nil).DSR(0, []byte{0})
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestDSRTruncated(t *testing.T) {
	t.Parallel()

	content := testsave.DSRSlot{Name: "Oscar"}.Bytes()
	_, err := newDecoder(t, sl2.DSR, nil).DSR(1, content[:DSRSlotSize-1])
	assert.ErrorIs(t, err, sl2.ErrMalformedContainer)

	_, err = newDecoder(t, sl2.DSR, nil).DSR(1, nil)
	assert.ErrorIs(t, err, sl2.ErrMalformedContainer)
}

func TestDSRInventoryCap(t *testing.T) {
	t.Parallel()

	content := testsave.DSRSlot{}.Bytes()
	// A max inventory count past capacity only reads the fixed region.
	testsave.PutU32(content, 856, 100000)

	r, err := newDecoder(t, sl2.DSR, nil).DSR(0, content)
	require.NoError(t, err)
	assert.Equal(t, uint32(100000), r.MaxInventoryCount)
}
