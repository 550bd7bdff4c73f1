// Package items resolves packed inventory identifiers into catalog entries.
//
// Games store an item as a single 32-bit id that folds a base item id, an
// infusion and an upgrade level together, and often a type band in the high
// bits. A Resolver undoes that packing for one title and looks the base item
// up in a caller-supplied Catalog.
package items

import "errors"

// ErrUnknownItem is returned when no catalog entry matches an id. It is a
// soft error: the item is still reported, flagged Unknown.
var ErrUnknownItem = errors.New("items: unknown item")

// Empty marks an unused inventory slot.
const Empty uint32 = 0xFFFFFFFF

// Entry is static catalog data for a base item.
type Entry struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Image    string `yaml:"image,omitempty"`
}

// Catalog looks up base items by type code and base id.
type Catalog interface {
	Lookup(typeCode, baseID uint32) (Entry, bool)
}

// Key is the catalog identity of an item.
type Key struct {
	TypeCode uint32
	BaseID   uint32
}

// Item is one decoded inventory slot.
type Item struct {
	// Slot is the record index in its inventory list.
	Slot int
	// SourceID is the id as stored in the save.
	SourceID uint32

	TypeCode uint32
	BaseID   uint32
	// Infusion is an index into the title's infusion names; 0 is none.
	Infusion uint32
	Upgrade  uint32

	Amount     uint32
	Durability uint32
	Order      uint32

	// DeepStorage is set for items held in a storage box rather than carried.
	DeepStorage bool
	// Unknown is set when the catalog had no entry for the id.
	Unknown bool

	Entry Entry
}

// Key returns the item's catalog identity.
func (it Item) Key() Key {
	return Key{TypeCode: it.TypeCode, BaseID: it.BaseID}
}

// SameEntry reports whether two items refer to the same catalog entry.
// Unknown items never match.
func SameEntry(a, b Item) bool {
	return !a.Unknown && !b.Unknown && a.Key() == b.Key()
}

// Table is a map-backed Catalog.
type Table map[Key]Entry

func (t Table) Lookup(typeCode, baseID uint32) (Entry, bool) {
	e, ok := t[Key{TypeCode: typeCode, BaseID: baseID}]
	return e, ok
}
