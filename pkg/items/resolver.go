package items

import (
	"fmt"
	"slices"
)

// Special maps a contiguous id range of one type band to a base id and
// upgrade level, for items that do not follow the arithmetic packing.
type Special struct {
	TypeCode uint32
	Min, Max uint32 // inclusive
	Split    func(id uint32) (base, upgrade uint32)
}

func (s Special) match(typeCode, id uint32) bool {
	return typeCode == s.TypeCode && id >= s.Min && id <= s.Max
}

// Scheme describes how one title packs item ids.
type Scheme struct {
	Name string
	// InfusionModulus bounds the infusion part of an id after the upgrade
	// level is removed.
	InfusionModulus uint32
	// StripMin and StripMax limit upgrade and infusion stripping to ids with
	// StripMin < id <= StripMax. Zero StripMax strips every id.
	StripMin, StripMax uint32
	// StripTypes limits stripping to these type bands. Empty means all.
	StripTypes []uint32
	// Absent ids are placeholders for "nothing equipped".
	Absent   map[Key]bool
	Specials []Special
	// Infusions names infusion indices.
	Infusions []string
	// Fallback picks a category for ids the catalog does not know.
	Fallback func(typeCode, id uint32) string
}

// InfusionName returns the label for an infusion index, or "" for none.
func (s *Scheme) InfusionName(infusion uint32) string {
	if int(infusion) < len(s.Infusions) {
		return s.Infusions[infusion]
	}
	return fmt.Sprintf("Infusion %d", infusion)
}

func (s *Scheme) strips(typeCode, id uint32) bool {
	if len(s.StripTypes) > 0 && !slices.Contains(s.StripTypes, typeCode) {
		return false
	}
	if s.StripMax == 0 {
		return true
	}
	return id > s.StripMin && id <= s.StripMax
}

// Resolution is the decomposed form of a packed id.
type Resolution struct {
	TypeCode uint32
	BaseID   uint32
	Infusion uint32
	Upgrade  uint32
	Entry    Entry
	// Absent is set for placeholder ids that mean "no item".
	Absent bool
}

// Resolver resolves ids for one title against one catalog.
type Resolver struct {
	catalog Catalog
	scheme  *Scheme
}

// NewResolver returns a resolver. A nil catalog resolves every id as unknown.
func NewResolver(catalog Catalog, scheme *Scheme) *Resolver {
	return &Resolver{catalog: catalog, scheme: scheme}
}

// Scheme returns the resolver's packing scheme.
func (r *Resolver) Scheme() *Scheme { return r.scheme }

func (r *Resolver) lookup(typeCode, id uint32) (Entry, bool) {
	if r.catalog == nil {
		return Entry{}, false
	}
	return r.catalog.Lookup(typeCode, id)
}

// Resolve decomposes id within the given type band.
//
// The catalog is tried with the id as stored, then through the scheme's
// special ranges, then with the upgrade level removed, then with the infusion removed as well. When every lookup misses
// the returned error wraps ErrUnknownItem and the resolution carries a
// fallback entry with a zero base id.
func (r *Resolver) Resolve(typeCode, id uint32) (Resolution, error) {
	s := r.scheme
	if s.Absent[Key{TypeCode: typeCode, BaseID: id}] {
		return Resolution{TypeCode: typeCode, Absent: true}, nil
	}

	if e, ok := r.lookup(typeCode, id); ok {
		return Resolution{TypeCode: typeCode, BaseID: id, Entry: e}, nil
	}

	for _, sp := range s.Specials {
		if !sp.match(typeCode, id) {
			continue
		}
		base, upgrade := sp.Split(id)
		if e, ok := r.lookup(typeCode, base); ok {
			return Resolution{TypeCode: typeCode, BaseID: base, Upgrade: upgrade, Entry: e}, nil
		}
		return r.unknown(typeCode, id)
	}

	if s.strips(typeCode, id) {
		upgrade := id % UpgradeModulus
		base := id - upgrade
		if e, ok := r.lookup(typeCode, base); ok {
			return Resolution{TypeCode: typeCode, BaseID: base, Upgrade: upgrade, Entry: e}, nil
		}

		if s.InfusionModulus != 0 {
			off := base % s.InfusionModulus
			if e, ok := r.lookup(typeCode, base-off); ok {
				return Resolution{
					TypeCode: typeCode,
					BaseID:   base - off,
					Infusion: off / InfusionStep,
					Upgrade:  upgrade,
					Entry:    e,
				}, nil
			}
		}
	}

	return r.unknown(typeCode, id)
}

func (r *Resolver) unknown(typeCode, id uint32) (Resolution, error) {
	category := CategoryTools
	if r.scheme.Fallback != nil {
		category = r.scheme.Fallback(typeCode, id)
	}
	res := Resolution{
		TypeCode: typeCode,
		Entry:    Entry{Name: fmt.Sprintf("Unknown %d", id), Category: category},
	}
	return res, fmt.Errorf("%w: %s type %#x id %d", ErrUnknownItem, r.scheme.Name, typeCode, id)
}
