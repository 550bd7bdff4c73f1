package items

// Categories. Catalog files may use others; these are the ones the
// fallbacks produce.
const (
	CategoryWeaponsShields = "weapons_shields"
	CategoryArmor          = "armor"
	CategoryRings          = "rings"
	CategoryConsumables    = "consumables"
	CategoryMaterials      = "materials"
	CategorySpells         = "spells"
	CategoryKeyItems       = "key_items"
	CategoryTools          = "tools"
	CategoryTalismans      = "talismans"
	CategoryAshesOfWar     = "ashes_of_war"
)

// DSR packs infusions in id % 1000 and has a few hand-numbered item lines.
func DSR() *Scheme {
	return &Scheme{
		Name:            "DSR",
		InfusionModulus: 1000,
		Absent: map[Key]bool{
			{TypeWeapon, 900000}: true, // fists
			{TypeArmor, 900000}:  true, // bare head
			{TypeArmor, 901000}:  true,
			{TypeArmor, 902000}:  true,
			{TypeArmor, 903000}:  true,
		},
		Specials: []Special{
			{TypeWeapon, 1330000, 1331999, func(id uint32) (uint32, uint32) {
				return 1330000, (id - 1330000) / 100
			}},
			{TypeWeapon, 1332000, 1332500, func(id uint32) (uint32, uint32) {
				return 1332000, (id - 1332000) / 100
			}},
			{TypeWeapon, 311000, 312705, func(id uint32) (uint32, uint32) {
				return 311000, id % UpgradeModulus
			}},
		},
		Infusions: []string{
			"", "Crystal", "Lightning", "Raw", "Magic",
			"Enchanted", "Divine", "Occult", "Fire", "Chaos",
		},
		Fallback: dsrFallback,
	}
}

func dsrFallback(typeCode, id uint32) string {
	switch typeCode {
	case TypeWeapon:
		return CategoryWeaponsShields
	case TypeArmor:
		return CategoryArmor
	case TypeRing:
		return CategoryRings
	case TypeGoods:
		switch {
		case id < 800:
			return CategoryConsumables
		case id >= 1000 && id < 2000:
			return CategoryMaterials
		case id > 3000:
			return CategorySpells
		default:
			return CategoryKeyItems
		}
	}
	return CategoryConsumables
}

// DS3 packs infusions in id % 10000, and only for weapon ids in
// (1000000, 23020000]. Estus flasks store their upgrade as a doubled offset.
func DS3() *Scheme {
	flask := func(base uint32) func(uint32) (uint32, uint32) {
		return func(id uint32) (uint32, uint32) {
			return base, (id - base) / 2
		}
	}
	return &Scheme{
		Name:            "DS3",
		InfusionModulus: 10000,
		StripMin:        1000000,
		StripMax:        23020000,
		StripTypes:      []uint32{TypeWeapon},
		Absent: map[Key]bool{
			{TypeWeapon, 110000}: true,
			{TypeArmor, 900000}:  true,
			{TypeArmor, 901000}:  true,
			{TypeArmor, 902000}:  true,
			{TypeArmor, 903000}:  true,
		},
		Specials: []Special{
			{TypeGoods, 150, 171, flask(150)}, // Estus Flask
			{TypeGoods, 190, 211, flask(190)}, // Ashen Estus Flask
		},
		Infusions: []string{
			"", "Heavy", "Sharp", "Refined", "Simple", "Crystal", "Fire", "Chaos",
			"Lightning", "Deep", "Dark", "Poison", "Blood", "Raw", "Blessed", "Hollow",
		},
	}
}

// ERBands are the type bands of ER gaitem ids.
var ERBands = []uint32{TypeWeapon, TypeArmor, TypeRing, TypeGoods, TypeAsh}

// ER packs infusions (affinities) in id % 10000.
func ER() *Scheme {
	return &Scheme{
		Name:            "ER",
		InfusionModulus: 10000,
		Infusions: []string{
			"", "Heavy", "Keen", "Quality", "Fire", "Flame Art", "Lightning",
			"Sacred", "Magic", "Cold", "Poison", "Blood", "Occult",
		},
		Fallback: func(typeCode, _ uint32) string {
			switch typeCode {
			case TypeWeapon:
				return CategoryWeaponsShields
			case TypeArmor:
				return CategoryArmor
			case TypeRing:
				return CategoryTalismans
			case TypeAsh:
				return CategoryAshesOfWar
			}
			return CategoryTools
		},
	}
}
