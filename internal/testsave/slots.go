package testsave

import "encoding/binary"

// Item is an inventory record to place in a synthetic slot.
type Item struct {
	Type       uint32
	ID         uint32
	Amount     uint32
	Durability uint32
}

// EmptyID marks an unused inventory record.
const EmptyID = 0xFFFFFFFF

// DSR slot geometry.
const (
	DSRSlotSize   = 90228
	dsrInventory  = 860
	dsrAttunement = 57644
	dsrBox        = 57776
)

// DSRSlot describes a populated DSR character.
type DSRSlot struct {
	Name  string
	Level uint32
	Souls uint32
	HP    uint32
	Class uint8
	// Items fill the inventory in order; the max inventory count is len(Items).
	Items []Item
	// Attuned spell ids, one per attunement slot from the first.
	Attuned []uint32
	// Box records carry a packed id; Type is ignored.
	Box []Item
}

// Bytes encodes the slot entry content.
func (s DSRSlot) Bytes() []byte {
	b := make([]byte, DSRSlotSize)
	b[0] = 1
	for i, v := range []uint32{s.HP, s.HP, s.HP} {
		PutU32(b, 96+4*i, v)
	}
	PutU32(b, 220, s.Level)
	PutU32(b, 224, s.Souls)
	PutUTF16(b, 244, s.Name)
	b[282] = s.Class
	PutU32(b, 856, uint32(len(s.Items)))

	for i, it := range s.Items {
		off := dsrInventory + i*28
		PutU32(b, off, it.Type)
		PutU32(b, off+4, it.ID)
		PutU32(b, off+8, it.Amount)
		PutU32(b, off+12, uint32(i))
		PutU32(b, off+20, it.Durability)
	}

	for i := 0; i < 12; i++ {
		id := uint32(EmptyID)
		if i < len(s.Attuned) {
			id = s.Attuned[i]
		}
		PutU32(b, dsrAttunement+i*8, id)
		PutU32(b, dsrAttunement+i*8+4, 1)
	}

	PutU32(b, dsrBox, uint32(len(s.Box)))
	for i, it := range s.Box {
		off := dsrBox + 4 + i*16
		PutU32(b, off, it.ID)
		PutU32(b, off+4, it.Amount)
		PutU32(b, off+8, uint32(i))
		PutU32(b, off+12, it.Durability)
	}
	return b
}

// DS3 geometry.
const (
	ds3ScanStart = 108
	// DS3StatsOffset is where the stats block lands in a DS3Slot.
	DS3StatsOffset = ds3ScanStart + 6144*8 + 8
	ds3MenuSize    = 4254 + 554*10
)

var sentinel = []byte{0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}

// DS3Slot describes a populated DS3 character. The slot prefix is one
// unbroken sentinel run.
type DS3Slot struct {
	Level    uint32
	Souls    uint32
	Vigor    uint32
	Items    []Item // ID is the packed id
	KeyItems []Item
	Storage  []Item
	Tools    uint32
}

// Bytes encodes the slot entry content.
func (s DS3Slot) Bytes() []byte {
	stats := DS3StatsOffset
	inv := stats + 784
	keys := inv + 4 + 1920*16 + 4
	tools := keys + 128*16 + 2304 + 7 + 25
	storage := tools + 4 + int(s.Tools)*8 + 400
	b := make([]byte, storage+1920*16)

	for off := ds3ScanStart; off < stats-8; off += 8 {
		copy(b[off:], sentinel)
	}

	u := func(field int, v uint32) { PutU32(b, stats+4*field, v) }
	u(0, 500)
	u(1, 500)
	u(2, 500)
	u(11, s.Vigor)
	u(22, s.Level)
	u(23, s.Souls)

	PutU32(b, inv, uint32(len(s.Items)))
	putDS3List(b, inv+4, s.Items)
	putDS3List(b, keys, s.KeyItems)
	PutU32(b, tools, s.Tools)
	putDS3List(b, storage, s.Storage)
	return b
}

func putDS3List(b []byte, off int, list []Item) {
	for i, it := range list {
		rec := off + i*16
		PutU32(b, rec, 0x80000000|uint32(i))
		PutU32(b, rec+4, it.ID)
		PutU32(b, rec+8, it.Amount)
	}
}

// DS3Menu encodes a DS3 menu entry with the given slots occupied.
func DS3Menu(steamID uint64, names map[int]string) []byte {
	b := make([]byte, ds3MenuSize)
	PutU64(b, 4, steamID)
	for slot, name := range names {
		b[4244+slot] = 1
		PutUTF16(b, 4254+554*slot, name)
	}
	return b
}

// GaItem is an ER gaitem record.
type GaItem struct {
	Handle uint32
	ID     uint32
}

// ERSlot describes a populated ER character.
type ERSlot struct {
	Version uint32
	Name    string
	Level   uint32
	Runes   uint32
	Vigor   uint32
	GaItems []GaItem
}

// Bytes encodes the slot entry content.
func (s ERSlot) Bytes() []byte {
	count := 5120
	if s.Version <= 81 {
		count = 5118
	}

	b := make([]byte, 32, 32+count*8+27*4+40+32)
	binary.LittleEndian.PutUint32(b, s.Version)
	copy(b[4:8], []byte{60, 42, 36, 0})

	for i := 0; i < count; i++ {
		var g GaItem
		if i < len(s.GaItems) {
			g = s.GaItems[i]
		}
		b = binary.LittleEndian.AppendUint32(b, g.Handle)
		b = binary.LittleEndian.AppendUint32(b, g.ID)
		if g.ID == 0 {
			continue
		}
		switch g.ID & 0xf0000000 {
		case 0:
			b = append(b, make([]byte, 13)...)
		case 0x10000000:
			b = append(b, make([]byte, 8)...)
		}
	}

	stats := make([]uint32, 27)
	stats[2], stats[3], stats[4] = 400, 400, 400
	stats[13] = s.Vigor
	stats[24] = s.Level
	stats[25] = s.Runes
	for _, v := range stats {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	b = append(b, make([]byte, 40)...)

	name := make([]byte, 32)
	PutUTF16(name, 0, s.Name)
	return append(b, name...)
}

// ERMenu encodes an ER menu entry with the given slots occupied.
func ERMenu(steamID uint64, occupied ...int) []byte {
	b := make([]byte, 4+8+320+4+4+10)
	PutU32(b, 0, 1)
	PutU64(b, 4, steamID)
	for _, slot := range occupied {
		b[4+8+320+4+4+slot] = 1
	}
	return b
}
