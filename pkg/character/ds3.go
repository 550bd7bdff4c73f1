package character

import (
	"bytes"
	"fmt"

	"github.com/falk/sl2-go/pkg/cursor"
	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/sl2"
)

// DS3 slots have a variable-length prefix. The stats block is found by
// walking 8-byte windows from ScanStart: a sentinel window advances by 8,
// anything else by 60, for ScanIterations steps.
const (
	ScanStart      = 108
	ScanIterations = 6144
	scanStride     = 60
)

var sentinel = []byte{0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff}

const (
	// DS3InventoryCapacity is the number of records in the inventory and
	// storage box lists.
	DS3InventoryCapacity = 1920
	// DS3KeyItemCapacity is the number of key item records.
	DS3KeyItemCapacity = 128
	ds3GestureCount    = 7
)

// SentinelRun returns the offset just past the run of consecutive sentinel
// windows starting at start. It stops after ScanIterations windows.
func SentinelRun(buf []byte, start int) int {
	off := start
	for i := 0; i < ScanIterations; i++ {
		if off < 0 || off+len(sentinel) > len(buf) || !bytes.Equal(buf[off:off+len(sentinel)], sentinel) {
			break
		}
		off += len(sentinel)
	}
	return off
}

// LocateStats walks the slot prefix and returns the offset of the stats block.
// The leading sentinel run is consumed first; the remaining iterations keep
// testing each window, since a later sentinel still advances by 8.
func LocateStats(buf []byte) (int, error) {
	off := SentinelRun(buf, ScanStart)
	for i := (off - ScanStart) / len(sentinel); i < ScanIterations; i++ {
		if off+len(sentinel) > len(buf) {
			return 0, fmt.Errorf("%w: scan window at %d (len %d)", cursor.ErrOutOfRange, off, len(buf))
		}
		if bytes.Equal(buf[off:off+len(sentinel)], sentinel) {
			off += len(sentinel)
		} else {
			off += scanStride
		}
	}
	return off + len(sentinel), nil
}

// DS3Attributes are the levelled stats.
type DS3Attributes struct {
	Vigor        uint32
	Attunement   uint32
	Endurance    uint32
	Vitality     uint32
	Strength     uint32
	Dexterity    uint32
	Intelligence uint32
	Faith        uint32
	Luck         uint32
}

// DS3Resistances are the status resistances.
type DS3Resistances struct {
	Toxic  uint32
	Bleed  uint32
	Poison uint32
	Curse  uint32
	Frost  uint32
}

// DS3 is a decoded DS3 character.
type DS3 struct {
	Common

	FP             Vitals
	Attributes     DS3Attributes
	CollectedSouls uint32
	Resistances    DS3Resistances

	Hollowing     uint8
	EstusMax      uint8
	AshenEstusMax uint8

	InventoryCount uint32
	KeyItems       []items.Item
	Gestures       [ds3GestureCount]uint8
	ToolCount      uint32

	// StatsOffset is where the stats block was found.
	StatsOffset int
}

func (*DS3) Title() sl2.Title { return sl2.DS3 }

// DS3 decodes an occupied DS3 slot entry.
func (d *Decoder) DS3(slot int, content []byte) (*DS3, error) {
	stats, err := LocateStats(content)
	if err != nil {
		return nil, malformed(slot, "locating stats", err)
	}

	r := &DS3{Common: Common{Slot: slot}, StatsOffset: stats}
	c := cursor.At(content, stats)

	r.HP = Vitals{c.U32(), c.U32(), c.U32()}
	r.FP = Vitals{c.U32(), c.U32(), c.U32()}
	c.Skip(4)
	r.Stamina = Vitals{c.U32(), c.U32(), c.U32()}
	c.Skip(4)
	a := &r.Attributes
	a.Vigor = c.U32()
	a.Attunement = c.U32()
	a.Endurance = c.U32()
	a.Strength = c.U32()
	a.Dexterity = c.U32()
	a.Intelligence = c.U32()
	a.Faith = c.U32()
	a.Luck = c.U32()
	c.Skip(8)
	a.Vitality = c.U32()
	r.Level = c.U32()
	r.Souls = c.U32()
	r.CollectedSouls = c.U32()

	c.Skip(100)
	r.Resistances = DS3Resistances{c.U32(), c.U32(), c.U32(), c.U32(), c.U32()}
	c.Skip(10)
	r.Hollowing = c.U8()
	c.Skip(3)
	r.EstusMax = c.U8()
	r.AshenEstusMax = c.U8()
	c.Skip(548)
	if err := c.Err(); err != nil {
		return nil, malformed(slot, "stats", err)
	}

	r.InventoryCount = c.U32()
	r.Items = d.ds3List(&r.Common, c, DS3InventoryCapacity, false)
	c.Skip(4)
	r.KeyItems = d.ds3List(&r.Common, c, DS3KeyItemCapacity, false)
	c.Skip(2304)
	copy(r.Gestures[:], c.Bytes(ds3GestureCount))
	c.Skip(25)
	r.ToolCount = c.U32()
	c.Skip(int(r.ToolCount) * 8)
	c.Skip(400)
	r.Storage = d.ds3List(&r.Common, c, DS3InventoryCapacity, true)
	if err := c.Err(); err != nil {
		return nil, malformed(slot, "inventory", err)
	}
	return r, nil
}

// ds3List reads n records of <handle, id, amount, opaque>.
func (d *Decoder) ds3List(cm *Common, c *cursor.Cursor, n int, deep bool) []items.Item {
	var out []items.Item
	for i := 0; i < n; i++ {
		c.Skip(4)
		id := c.U32()
		amount := c.U32()
		c.Skip(4)
		if c.Err() != nil {
			return out
		}
		if id == 0 || id == items.Empty || amount == 0 {
			continue
		}

		typeCode, base := items.SplitBand(id, items.Bands)
		it, ok := d.item(cm, i, typeCode, base)
		if !ok {
			continue
		}
		it.SourceID = id
		it.Amount = amount
		it.DeepStorage = deep
		out = append(out, it)
	}
	return out
}
