package character

import (
	"fmt"

	"github.com/falk/sl2-go/pkg/cursor"
	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/sl2"
)

// DSR slot layout. All offsets are from the start of the decrypted entry.
const (
	dsrHP          = 96
	dsrStamina     = 124
	dsrAttributes  = 136
	dsrHumanity    = 208
	dsrName        = 244
	dsrNameSize    = 24
	dsrSex         = 278
	dsrCovenantLvl = 310
	dsrResists     = 332
	dsrCovenant    = 351
	dsrEquipment   = 768
	dsrInventory   = 860

	// DSRInventoryCapacity is the number of inventory records in a slot.
	DSRInventoryCapacity = 2028
	dsrInventoryRecord   = 28

	dsrAttunement = dsrInventory + DSRInventoryCapacity*dsrInventoryRecord
	// DSRAttunementSlots is the number of spell attunement slots.
	DSRAttunementSlots = 12
	dsrGestures        = dsrAttunement + DSRAttunementSlots*8
	dsrGestureCount    = 18
	dsrBox             = dsrGestures + dsrGestureCount*2

	// DSRBoxCapacity is the number of bottomless box records in a slot.
	DSRBoxCapacity = 2028
	dsrBoxRecord   = 16

	// DSRSlotSize is the smallest slot entry the decoder accepts.
	DSRSlotSize = dsrBox + 4 + DSRBoxCapacity*dsrBoxRecord
)

// DSRAttributes are the levelled stats.
type DSRAttributes struct {
	Vitality     uint32
	Attunement   uint32
	Endurance    uint32
	Strength     uint32
	Dexterity    uint32
	Intelligence uint32
	Faith        uint32
}

// DSRResistances are the status resistances.
type DSRResistances struct {
	Toxic  uint32
	Bleed  uint32
	Poison uint32
	Curse  uint32
}

// DSREquipment holds inventory indices of equipped items.
type DSREquipment struct {
	LeftHand    [2]uint32
	RightHand   [2]uint32
	LeftArrows  uint32
	LeftBolts   uint32
	RightArrows uint32
	RightBolts  uint32
	Head        uint32
	Body        uint32
	Arms        uint32
	Legs        uint32
	Rings       [2]uint32
	Quick       [5]uint32
}

// DSR is a decoded DSR character.
type DSR struct {
	Common

	Attributes  DSRAttributes
	Humanity    uint32
	Resistance  uint32
	EarnedSouls uint32
	HollowState uint32

	Sex       uint32
	Class     uint8
	Physique  uint8
	Gift      uint8
	Covenant  uint8
	Face      uint8
	Hair      uint8
	HairColor uint8

	CovenantLevels [10]uint8
	Resistances    DSRResistances
	Equipment      DSREquipment

	BackpackCount     uint32
	MaxInventoryCount uint32

	// Attunement lists attuned spells; Amount is the remaining casts.
	Attunement []items.Item
	Gestures   [dsrGestureCount]uint16
}

func (*DSR) Title() sl2.Title { return sl2.DSR }

// DSR decodes a DSR slot entry. A slot whose first byte is zero is empty and
// yields a nil record.
func (d *Decoder) DSR(slot int, content []byte) (*DSR, error) {
	if len(content) == 0 {
		return nil, malformed(slot, "slot", fmt.Errorf("empty entry"))
	}
	if content[0] == 0 {
		return nil, nil
	}
	if len(content) < DSRSlotSize {
		return nil, malformed(slot, "slot", fmt.Errorf("%d bytes, need %d", len(content), DSRSlotSize))
	}

	r := &DSR{Common: Common{Slot: slot}}

	c := cursor.At(content, dsrHP)
	r.HP = Vitals{c.U32(), c.U32(), c.U32()}
	c.Seek(dsrStamina)
	r.Stamina = Vitals{c.U32(), c.U32(), c.U32()}

	// Each attribute is preceded by a zero guard word.
	c.Seek(dsrAttributes)
	attr := func() uint32 {
		c.Skip(4)
		return c.U32()
	}
	r.Attributes = DSRAttributes{
		Vitality:     attr(),
		Attunement:   attr(),
		Endurance:    attr(),
		Strength:     attr(),
		Dexterity:    attr(),
		Intelligence: attr(),
		Faith:        attr(),
	}

	c.Seek(dsrHumanity)
	r.Humanity = c.U32()
	c.Skip(4)
	r.Resistance = c.U32()
	r.Level = c.U32()
	r.Souls = c.U32()
	c.Skip(4)
	r.EarnedSouls = c.U32()
	c.Skip(4)
	r.HollowState = c.U32()
	c.Seek(dsrName)
	r.Name = c.UTF16(dsrNameSize)

	c.Seek(dsrSex)
	r.Sex = c.U32()
	r.Class = c.U8()
	r.Physique = c.U8()
	r.Gift = c.U8()

	c.Seek(dsrCovenantLvl)
	copy(r.CovenantLevels[:], c.Bytes(len(r.CovenantLevels)))

	c.Seek(dsrResists)
	r.Resistances = DSRResistances{c.U32(), c.U32(), c.U32(), c.U32()}

	c.Seek(dsrCovenant)
	r.Covenant = c.U8()
	r.Face = c.U8()
	r.Hair = c.U8()
	r.HairColor = c.U8()

	c.Seek(dsrEquipment)
	eq := &r.Equipment
	eq.LeftHand = [2]uint32{c.U32(), c.U32()}
	eq.RightHand = [2]uint32{c.U32(), c.U32()}
	eq.LeftArrows, eq.LeftBolts = c.U32(), c.U32()
	eq.RightArrows, eq.RightBolts = c.U32(), c.U32()
	eq.Head, eq.Body, eq.Arms, eq.Legs = c.U32(), c.U32(), c.U32(), c.U32()
	c.Skip(4)
	eq.Rings = [2]uint32{c.U32(), c.U32()}
	for i := range eq.Quick {
		eq.Quick[i] = c.U32()
	}
	r.BackpackCount = c.U32()
	c.Skip(4)
	r.MaxInventoryCount = c.U32()
	if err := c.Err(); err != nil {
		return nil, malformed(slot, "header", err)
	}

	if err := d.dsrInventory(r, c); err != nil {
		return nil, malformed(slot, "inventory", err)
	}
	if err := d.dsrAttunement(r, c); err != nil {
		return nil, malformed(slot, "attunement", err)
	}
	if err := d.dsrBox(r, c); err != nil {
		return nil, malformed(slot, "bottomless box", err)
	}
	return r, nil
}

func (d *Decoder) dsrInventory(r *DSR, c *cursor.Cursor) error {
	n := min(int(r.MaxInventoryCount), DSRInventoryCapacity)
	for i := 0; i < n; i++ {
		c.Seek(dsrInventory + i*dsrInventoryRecord)
		typeCode := c.U32()
		id := c.U32()
		amount := c.U32()
		order := c.U32()
		c.Skip(4)
		durability := c.U32()
		if c.Err() != nil {
			break
		}
		if id == items.Empty {
			continue
		}

		it, ok := d.item(&r.Common, i, typeCode, id)
		if !ok {
			continue
		}
		it.Amount = amount
		it.Order = order
		it.Durability = durability
		r.Items = append(r.Items, it)
	}
	return c.Err()
}

func (d *Decoder) dsrAttunement(r *DSR, c *cursor.Cursor) error {
	c.Seek(dsrAttunement)
	for i := 0; i < DSRAttunementSlots; i++ {
		id := c.U32()
		uses := c.U32()
		if c.Err() != nil || id == 0 || id == items.Empty {
			continue
		}
		it, ok := d.item(&r.Common, i, items.TypeGoods, id)
		if !ok {
			continue
		}
		it.Amount = uses
		r.Attunement = append(r.Attunement, it)
	}
	for i := range r.Gestures {
		r.Gestures[i] = c.U16()
	}
	return c.Err()
}

// The bottomless box stores the type band in the id itself.
func (d *Decoder) dsrBox(r *DSR, c *cursor.Cursor) error {
	c.Seek(dsrBox)
	n := min(int(c.U32()), DSRBoxCapacity)
	for i := 0; i < n; i++ {
		packed := c.U32()
		amount := c.U32()
		order := c.U32()
		durability := c.U32()
		if c.Err() != nil {
			break
		}
		if packed == items.Empty || amount == 0 {
			continue
		}

		typeCode, id := items.SplitBand(packed, items.Bands)
		it, ok := d.item(&r.Common, i, typeCode, id)
		if !ok {
			continue
		}
		it.SourceID = packed
		it.Amount = amount
		it.Order = order
		it.Durability = durability
		it.DeepStorage = true
		r.Storage = append(r.Storage, it)
	}
	return c.Err()
}

var (
	dsrClasses = []string{
		"Warrior", "Knight", "Wanderer", "Thief", "Bandit",
		"Hunter", "Sorcerer", "Pyromancer", "Cleric", "Deprived",
	}
	dsrGifts = []string{
		"None", "Goddess's Blessing", "Black Firebomb", "Twin Humanities", "Binoculars",
		"Pendant", "Master Key", "Tiny Being's Ring", "Old Witch's Ring",
	}
	dsrPhysiques = []string{
		"Average", "Slim", "Very Slim", "Large", "Very Large",
		"Large Upper Body", "Large Lower Body", "Top-heavy", "Tiny Head",
	}
	dsrCovenants = []string{
		"None", "Way of White", "Princess's Guard", "Warrior of Sunlight", "Darkwraith",
		"Path of the Dragon", "Gravelord Servant", "Forest Hunter", "Darkmoon Blade", "Chaos Servant",
	}
)

func label(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("Unknown (%d)", v)
}

func (r *DSR) ClassName() string    { return label(dsrClasses, r.Class) }
func (r *DSR) GiftName() string     { return label(dsrGifts, r.Gift) }
func (r *DSR) PhysiqueName() string { return label(dsrPhysiques, r.Physique) }
func (r *DSR) CovenantName() string { return label(dsrCovenants, r.Covenant) }
