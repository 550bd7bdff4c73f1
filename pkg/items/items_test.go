package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dsrCatalog() Table {
	return Table{
		{TypeWeapon, 200000}:  {Name: "Dagger", Category: CategoryWeaponsShields},
		{TypeWeapon, 1330000}: {Name: "Pyromancy Flame", Category: CategorySpells},
		{TypeWeapon, 1332000}: {Name: "Pyromancy Flame (Ascended)", Category: CategorySpells},
		{TypeWeapon, 311000}:  {Name: "Great Lord Greatsword", Category: CategoryWeaponsShields},
		{TypeArmor, 10000}:    {Name: "Catarina Helm", Category: CategoryArmor},
		{TypeGoods, 380}:      {Name: "Estus Flask", Category: CategoryConsumables},
	}
}

func TestResolveDSR(t *testing.T) {
	t.Parallel()

	r := NewResolver(dsrCatalog(), DSR())

	tests := []struct {
		name     string
		typeCode uint32
		id       uint32
		want     Resolution
	}{
		{"direct", TypeGoods, 380, Resolution{TypeCode: TypeGoods, BaseID: 380, Entry: Entry{Name: "Estus Flask", Category: CategoryConsumables}}},
		{"upgrade", TypeWeapon, 200005, Resolution{BaseID: 200000, Upgrade: 5, Entry: Entry{Name: "Dagger", Category: CategoryWeaponsShields}}},
		{"infusion and upgrade", TypeWeapon, 200410, Resolution{BaseID: 200000, Infusion: 4, Upgrade: 10, Entry: Entry{Name: "Dagger", Category: CategoryWeaponsShields}}},
		{"pyromancy flame", TypeWeapon, 1330700, Resolution{BaseID: 1330000, Upgrade: 7, Entry: Entry{Name: "Pyromancy Flame", Category: CategorySpells}}},
		{"ascended flame", TypeWeapon, 1332500, Resolution{BaseID: 1332000, Upgrade: 5, Entry: Entry{Name: "Pyromancy Flame (Ascended)", Category: CategorySpells}}},
		{"artorias sword", TypeWeapon, 311705, Resolution{BaseID: 311000, Upgrade: 5, Entry: Entry{Name: "Great Lord Greatsword", Category: CategoryWeaponsShields}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.typeCode, tt.id)
			require.NoError(t, err)
			tt.want.TypeCode = tt.typeCode
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAbsent(t *testing.T) {
	t.Parallel()

	r := NewResolver(dsrCatalog(), DSR())
	got, err := r.Resolve(TypeWeapon, 900000)
	require.NoError(t, err)
	assert.True(t, got.Absent)

	got, err = r.Resolve(TypeArmor, 902000)
	require.NoError(t, err)
	assert.True(t, got.Absent)
}

func TestResolveUnknown(t *testing.T) {
	t.Parallel()

	r := NewResolver(dsrCatalog(), DSR())

	tests := []struct {
		typeCode uint32
		id       uint32
		category string
	}{
		{TypeWeapon, 999999, CategoryWeaponsShields},
		{TypeArmor, 123456, CategoryArmor},
		{TypeRing, 100, CategoryRings},
		{TypeGoods, 500, CategoryConsumables},
		{TypeGoods, 1500, CategoryMaterials},
		{TypeGoods, 5000, CategorySpells},
		{TypeGoods, 2500, CategoryKeyItems},
	}
	for _, tt := range tests {
		got, err := r.Resolve(tt.typeCode, tt.id)
		require.ErrorIs(t, err, ErrUnknownItem)
		assert.Equal(t, uint32(0), got.BaseID)
		assert.Equal(t, uint32(0), got.Upgrade)
		assert.Equal(t, uint32(0), got.Infusion)
		assert.Equal(t, tt.category, got.Entry.Category, "id %d", tt.id)
		assert.Contains(t, got.Entry.Name, "Unknown")
	}
}

func TestResolveNilCatalog(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil, DS3())
	got, err := r.Resolve(TypeGoods, 380)
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.Equal(t, CategoryTools, got.Entry.Category)
}

func TestResolveDS3(t *testing.T) {
	t.Parallel()

	cat := Table{
		{TypeWeapon, 2000000}: {Name: "Longsword"},
		{TypeGoods, 150}:      {Name: "Estus Flask"},
		{TypeGoods, 190}:      {Name: "Ashen Estus Flask"},
		{TypeWeapon, 500}:     {Name: "Low Id"},
		{TypeArmor, 21000000}: {Name: "Some Helm"},
		{TypeGoods, 1300300}:  {Name: "Some Spell"},
	}
	r := NewResolver(cat, DS3())

	got, err := r.Resolve(TypeWeapon, 2000000+1100+7)
	require.NoError(t, err)
	assert.Equal(t, uint32(2000000), got.BaseID)
	assert.Equal(t, uint32(11), got.Infusion)
	assert.Equal(t, "Poison", r.Scheme().InfusionName(got.Infusion))
	assert.Equal(t, uint32(7), got.Upgrade)

	got, err = r.Resolve(TypeGoods, 166)
	require.NoError(t, err)
	assert.Equal(t, "Estus Flask", got.Entry.Name)
	assert.Equal(t, uint32(8), got.Upgrade)

	got, err = r.Resolve(TypeGoods, 200)
	require.NoError(t, err)
	assert.Equal(t, "Ashen Estus Flask", got.Entry.Name)
	assert.Equal(t, uint32(5), got.Upgrade)

	// Ids outside the weapon range are never stripped.
	_, err = r.Resolve(TypeWeapon, 503)
	assert.ErrorIs(t, err, ErrUnknownItem)

	// Only weapon ids carry upgrade and infusion.
	_, err = r.Resolve(TypeArmor, 21000005)
	assert.ErrorIs(t, err, ErrUnknownItem)
	_, err = r.Resolve(TypeGoods, 1300302)
	assert.ErrorIs(t, err, ErrUnknownItem)

	got, err = r.Resolve(TypeWeapon, 110000)
	require.NoError(t, err)
	assert.True(t, got.Absent)
}

func TestResolveDirectBeforeSpecial(t *testing.T) {
	t.Parallel()

	r := NewResolver(Table{
		{TypeGoods, 150}: {Name: "Estus Flask"},
		{TypeGoods, 160}: {Name: "Estus Flask+5"},
	}, DS3())

	got, err := r.Resolve(TypeGoods, 160)
	require.NoError(t, err)
	assert.Equal(t, "Estus Flask+5", got.Entry.Name)
	assert.Equal(t, uint32(160), got.BaseID)
	assert.Zero(t, got.Upgrade)

	got, err = r.Resolve(TypeGoods, 162)
	require.NoError(t, err)
	assert.Equal(t, "Estus Flask", got.Entry.Name)
	assert.Equal(t, uint32(6), got.Upgrade)
}

func TestComposeDecomposeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, modulus := range []uint32{1000, 10000} {
		maxInfusion := modulus/InfusionStep - 1
		for _, base := range []uint32{0, modulus, 200 * modulus, 1234 * modulus} {
			for infusion := uint32(0); infusion <= maxInfusion; infusion += 3 {
				for _, upgrade := range []uint32{0, 1, 15, 99} {
					id := Compose(base, infusion, upgrade)
					b, i, u := Decompose(id, modulus)
					require.Equal(t, [3]uint32{base, infusion, upgrade}, [3]uint32{b, i, u}, "id %d", id)
				}
			}
		}
	}
}

func TestSplitBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       uint32
		typeCode uint32
		rest     uint32
	}{
		{1000, TypeWeapon, 1000},
		{0x10000000 + 900000, TypeArmor, 900000},
		{0x20000000 + 100, TypeRing, 100},
		{0x40000000 + 150, TypeGoods, 150},
		{0x30000000, TypeRing, 0x10000000},
	}
	for _, tt := range tests {
		typeCode, rest := SplitBand(tt.id, Bands)
		assert.Equal(t, tt.typeCode, typeCode, "id %#x", tt.id)
		assert.Equal(t, tt.rest, rest, "id %#x", tt.id)
	}

	typeCode, rest := SplitBand(0x80000000+10, ERBands)
	assert.Equal(t, TypeAsh, typeCode)
	assert.Equal(t, uint32(10), rest)
}

func TestSameEntry(t *testing.T) {
	t.Parallel()

	a := Item{TypeCode: TypeWeapon, BaseID: 200000, Upgrade: 5}
	b := Item{TypeCode: TypeWeapon, BaseID: 200000, Infusion: 3}
	c := Item{TypeCode: TypeArmor, BaseID: 200000}
	assert.True(t, SameEntry(a, b))
	assert.False(t, SameEntry(a, c))

	b.Unknown = true
	assert.False(t, SameEntry(a, b))
}
