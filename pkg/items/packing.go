package items

// Type bands stored in the high bits of packed ids.
const (
	TypeWeapon uint32 = 0x00000000
	TypeArmor  uint32 = 0x10000000
	TypeRing   uint32 = 0x20000000
	TypeGoods  uint32 = 0x40000000
	TypeAsh    uint32 = 0x80000000
)

// Bands is the common set of type bands, in ascending order.
var Bands = []uint32{TypeWeapon, TypeArmor, TypeRing, TypeGoods}

const (
	// UpgradeModulus separates the upgrade level from the rest of an id.
	UpgradeModulus = 100
	// InfusionStep is the id distance between adjacent infusions.
	InfusionStep = 100
)

// SplitBand subtracts the largest band threshold not above id and returns
// the band and the remainder. bands must be sorted ascending.
func SplitBand(id uint32, bands []uint32) (typeCode, rest uint32) {
	for i := len(bands) - 1; i >= 0; i-- {
		if id >= bands[i] {
			return bands[i], id - bands[i]
		}
	}
	return 0, id
}

// Compose packs a base id, infusion index and upgrade level.
func Compose(base, infusion, upgrade uint32) uint32 {
	return base + infusion*InfusionStep + upgrade
}

// Decompose is the inverse of Compose for a title whose infusions occupy
// id % modulus.
func Decompose(id, modulus uint32) (base, infusion, upgrade uint32) {
	upgrade = id % UpgradeModulus
	rest := id - upgrade
	off := rest % modulus
	return rest - off, off / InfusionStep, upgrade
}
