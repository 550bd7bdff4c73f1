// Package character decodes per-slot character records from decrypted save
// entries.
//
// Each supported title has its own layout and its own record type; Record is
// the closed set of those types. Empty slots decode to a nil record.
package character

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/sl2"
)

const (
	// SlotCount is the number of character slots every title provides.
	SlotCount = 10
	// MenuEntry is the index of the entry that follows the slot entries.
	MenuEntry = 10
)

// Vitals is a current/max/base triple such as HP or stamina.
type Vitals struct {
	Current uint32
	Max     uint32
	Base    uint32
}

// Common holds the fields every title's record has.
type Common struct {
	Slot  int
	Name  string
	Level uint32
	// Souls is the currency held (runes for ER).
	Souls   uint32
	HP      Vitals
	Stamina Vitals

	// Items are carried items.
	Items []items.Item
	// Storage holds items kept in a storage box.
	Storage []items.Item
	// UnknownItems counts items the catalog could not resolve.
	UnknownItems int
}

// Base returns the shared part of a record.
func (c *Common) Base() *Common { return c }

// Record is a decoded character: *DSR, *DS3 or *ER.
type Record interface {
	Title() sl2.Title
	Base() *Common
	sealed()
}

func (*DSR) sealed() {}
func (*DS3) sealed() {}
func (*ER) sealed()  {}

// Decoder decodes character entries for one title.
type Decoder struct {
	title    sl2.Title
	resolver *items.Resolver
	logger   *slog.Logger
}

// NewDecoder returns a decoder for title that resolves items against catalog.
// A nil logger uses slog.Default.
func NewDecoder(title sl2.Title, catalog items.Catalog, logger *slog.Logger) (*Decoder, error) {
	var scheme *items.Scheme
	switch title {
	case sl2.DSR:
		scheme = items.DSR()
	case sl2.DS3:
		scheme = items.DS3()
	case sl2.ER:
		scheme = items.ER()
	default:
		return nil, fmt.Errorf("%w: no character layout for %s", sl2.ErrUnsupportedVariant, title)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{
		title:    title,
		resolver: items.NewResolver(catalog, scheme),
		logger:   logger.With("title", title.String()),
	}, nil
}

// Title returns the title the decoder reads.
func (d *Decoder) Title() sl2.Title { return d.title }

// Decode decodes one slot entry. It returns a nil record for an empty slot.
// DS3 and ER slots are not self-describing; callers check the menu's
// occupancy first.
func (d *Decoder) Decode(slot int, content []byte) (Record, error) {
	switch d.title {
	case sl2.DSR:
		r, err := d.DSR(slot, content)
		if r == nil {
			return nil, err
		}
		return r, err
	case sl2.DS3:
		r, err := d.DS3(slot, content)
		if r == nil {
			return nil, err
		}
		return r, err
	default:
		r, err := d.ER(slot, content)
		if r == nil {
			return nil, err
		}
		return r, err
	}
}

// item resolves one inventory id into c's tally. ok is false for ids that
// mean "no item".
func (d *Decoder) item(c *Common, index int, typeCode, id uint32) (items.Item, bool) {
	res, err := d.resolver.Resolve(typeCode, id)
	if res.Absent {
		return items.Item{}, false
	}
	it := items.Item{
		Slot:     index,
		SourceID: id,
		TypeCode: res.TypeCode,
		BaseID:   res.BaseID,
		Infusion: res.Infusion,
		Upgrade:  res.Upgrade,
		Entry:    res.Entry,
	}
	if err != nil {
		if !errors.Is(err, items.ErrUnknownItem) {
			d.logger.Warn("resolving item", "slot", c.Slot, "index", index, "error", err)
		}
		it.Unknown = true
		c.UnknownItems++
		d.logger.Debug("unknown item",
			"slot", c.Slot,
			"index", index,
			"type", fmt.Sprintf("%#x", typeCode),
			"id", id,
			"category", res.Entry.Category,
		)
	}
	return it, true
}

func malformed(slot int, what string, err error) error {
	return fmt.Errorf("slot %d: %s: %w: %w", slot, what, sl2.ErrMalformedContainer, err)
}
