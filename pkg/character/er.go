package character

import (
	"github.com/falk/sl2-go/pkg/cursor"
	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/sl2"
)

const (
	erGaItems = 32
	// ER saves at or below this version hold two fewer gaitem records.
	erShortGaVersion = 81
	erGaItemsShort   = 5118
	erGaItemsLong    = 5120
	erNameSize       = 32

	erWeaponExtra = 13
	erArmorExtra  = 8
)

// GaItem is an entry of the ER item handle table.
type GaItem struct {
	Handle uint32
	ID     uint32
	// AshHandle is the handle of the ash of war fitted to a weapon.
	AshHandle uint32
}

// ERAttributes are the levelled stats.
type ERAttributes struct {
	Vigor        uint32
	Mind         uint32
	Endurance    uint32
	Strength     uint32
	Dexterity    uint32
	Intelligence uint32
	Faith        uint32
	Arcane       uint32
}

// ER is a decoded ER character.
type ER struct {
	Common

	Version     uint32
	MapID       [4]byte
	FP          Vitals
	Attributes  ERAttributes
	RunesMemory uint32
	GaItems     []GaItem
}

func (*ER) Title() sl2.Title { return sl2.ER }

// GaItemCount returns the number of gaitem records for a save version.
func GaItemCount(version uint32) int {
	if version <= erShortGaVersion {
		return erGaItemsShort
	}
	return erGaItemsLong
}

// ER decodes an ER slot entry. A zero version word marks an empty slot.
func (d *Decoder) ER(slot int, content []byte) (*ER, error) {
	c := cursor.New(content)
	version := c.U32()
	if err := c.Err(); err != nil {
		return nil, malformed(slot, "version", err)
	}
	if version == 0 {
		return nil, nil
	}

	r := &ER{Common: Common{Slot: slot}, Version: version}
	copy(r.MapID[:], c.Bytes(len(r.MapID)))

	c.Seek(erGaItems)
	n := GaItemCount(version)
	for i := 0; i < n; i++ {
		g := GaItem{Handle: c.U32(), ID: c.U32()}
		if g.ID != 0 {
			switch g.ID & 0xf0000000 {
			case items.TypeWeapon:
				c.Skip(8)
				g.AshHandle = c.U32()
				c.Skip(erWeaponExtra - 12)
			case items.TypeArmor:
				c.Skip(erArmorExtra)
			}
		}
		if c.Err() != nil {
			break
		}
		r.GaItems = append(r.GaItems, g)
	}
	if err := c.Err(); err != nil {
		return nil, malformed(slot, "gaitems", err)
	}

	s := c.U32s(27)
	if err := c.Err(); err != nil {
		return nil, malformed(slot, "stats", err)
	}
	r.HP = Vitals{s[2], s[3], s[4]}
	r.FP = Vitals{s[5], s[6], s[7]}
	r.Stamina = Vitals{s[9], s[10], s[11]}
	r.Attributes = ERAttributes{
		Vigor:        s[13],
		Mind:         s[14],
		Endurance:    s[15],
		Strength:     s[16],
		Dexterity:    s[17],
		Intelligence: s[18],
		Faith:        s[19],
		Arcane:       s[20],
	}
	r.Level = s[24]
	r.Souls = s[25]
	r.RunesMemory = s[26]

	c.Skip(40)
	r.Name = c.UTF16(erNameSize)
	if err := c.Err(); err != nil {
		return nil, malformed(slot, "name", err)
	}

	for i, g := range r.GaItems {
		if g.ID == 0 || g.ID == items.Empty {
			continue
		}
		typeCode, base := items.SplitBand(g.ID, items.ERBands)
		it, ok := d.item(&r.Common, i, typeCode, base)
		if !ok {
			continue
		}
		it.SourceID = g.ID
		it.Amount = 1
		r.Items = append(r.Items, it)
	}
	return r, nil
}
