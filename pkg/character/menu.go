package character

import (
	"fmt"

	"github.com/falk/sl2-go/pkg/cursor"
	"github.com/falk/sl2-go/pkg/sl2"
)

// Menu is the profile summary entry that follows the slot entries. It is
// authoritative for slot occupancy in titles whose slots are not
// self-describing.
type Menu struct {
	Version  uint32
	SteamID  uint64
	Occupied [SlotCount]bool
	// Names are the slot names shown on the load screen, when stored.
	Names [SlotCount]string
}

const (
	ds3MenuSteamID   = 4
	ds3MenuOccupancy = 4244
	ds3MenuNames     = 4254
	ds3MenuNameSize  = 32
	ds3MenuStride    = 554

	erMenuSettings = 320
)

// ParseMenu decodes the menu entry of a DS3 or ER save.
func ParseMenu(title sl2.Title, content []byte) (*Menu, error) {
	switch title {
	case sl2.DS3:
		return parseDS3Menu(content)
	case sl2.ER:
		return parseERMenu(content)
	default:
		return nil, fmt.Errorf("%w: %s has no menu entry", sl2.ErrUnsupportedVariant, title)
	}
}

func parseDS3Menu(content []byte) (*Menu, error) {
	m := &Menu{}
	c := cursor.At(content, ds3MenuSteamID)
	m.SteamID = c.U64()

	c.Seek(ds3MenuOccupancy)
	for i, b := range c.Bytes(SlotCount) {
		m.Occupied[i] = b == 1
	}
	for i := range m.Names {
		c.Seek(ds3MenuNames + i*ds3MenuStride)
		m.Names[i] = c.UTF16(ds3MenuNameSize)
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("menu: %w: %w", sl2.ErrMalformedContainer, err)
	}
	return m, nil
}

func parseERMenu(content []byte) (*Menu, error) {
	m := &Menu{}
	c := cursor.New(content)
	m.Version = c.U32()
	m.SteamID = c.U64()
	c.Skip(erMenuSettings)
	c.Skip(4) // two u16 fields
	n := c.U32()
	c.Skip(int(n))
	for i, b := range c.Bytes(SlotCount) {
		m.Occupied[i] = b != 0
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("menu: %w: %w", sl2.ErrMalformedContainer, err)
	}
	return m, nil
}
