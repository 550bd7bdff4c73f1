// Package snapshot exports a compact summary of a decoded save.
//
// A snapshot is deterministic CBOR (RFC 8949 core deterministic encoding)
// compressed with zstd. The same save always yields the same bytes, so
// snapshots can be compared or content-addressed directly.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/save"
	"github.com/falk/sl2-go/pkg/zstd"
)

// Version is the snapshot format version.
const Version = 1

// ErrVersion is returned when decoding a snapshot of another format version.
var ErrVersion = errors.New("snapshot: unsupported version")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// Summary describes a save without its raw entry data.
type Summary struct {
	Version    int         `cbor:"version"`
	Title      string      `cbor:"title"`
	Entries    int         `cbor:"entries"`
	SteamID    uint64      `cbor:"steam_id,omitempty"`
	Characters []Character `cbor:"characters"`
	// SlotErrors maps slot index to the error text.
	SlotErrors map[int]string `cbor:"slot_errors,omitempty"`
}

// Character is the per-slot part of a Summary.
type Character struct {
	Slot         int    `cbor:"slot"`
	Name         string `cbor:"name"`
	Level        uint32 `cbor:"level"`
	Souls        uint32 `cbor:"souls"`
	Items        []Item `cbor:"items"`
	Storage      []Item `cbor:"storage,omitempty"`
	UnknownItems int    `cbor:"unknown_items"`
}

// Item is one inventory line of a Character.
type Item struct {
	ID       uint32 `cbor:"id"`
	Name     string `cbor:"name"`
	Category string `cbor:"category"`
	Infusion uint32 `cbor:"infusion,omitempty"`
	Upgrade  uint32 `cbor:"upgrade,omitempty"`
	Amount   uint32 `cbor:"amount"`
	Unknown  bool   `cbor:"unknown,omitempty"`
}

// Summarize builds the summary of s.
func Summarize(s *save.Save) Summary {
	sum := Summary{
		Version:    Version,
		Title:      s.Title.String(),
		Entries:    len(s.Container.Entries),
		SteamID:    s.SteamID(),
		Characters: []Character{},
	}
	for _, r := range s.Characters() {
		b := r.Base()
		ch := Character{
			Slot:         b.Slot,
			Name:         b.Name,
			Level:        b.Level,
			Souls:        b.Souls,
			Items:        make([]Item, 0, len(b.Items)),
			UnknownItems: b.UnknownItems,
		}
		for _, it := range b.Items {
			ch.Items = append(ch.Items, itemOf(it))
		}
		for _, it := range b.Storage {
			ch.Storage = append(ch.Storage, itemOf(it))
		}
		sum.Characters = append(sum.Characters, ch)
	}
	if len(s.SlotErrors) > 0 {
		sum.SlotErrors = make(map[int]string, len(s.SlotErrors))
		for slot, err := range s.SlotErrors {
			sum.SlotErrors[slot] = err.Error()
		}
	}
	return sum
}

func itemOf(it items.Item) Item {
	return Item{
		ID:       it.SourceID,
		Name:     it.Entry.Name,
		Category: it.Entry.Category,
		Infusion: it.Infusion,
		Upgrade:  it.Upgrade,
		Amount:   it.Amount,
		Unknown:  it.Unknown,
	}
}

// Marshal encodes a summary as compressed deterministic CBOR.
func Marshal(sum Summary) ([]byte, error) {
	raw, err := encMode.Marshal(sum)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encoding: %w", err)
	}
	return zstd.Compress(raw, zstd.DefaultLevel), nil
}

// Unmarshal decodes a snapshot produced by Marshal.
func Unmarshal(data []byte) (Summary, error) {
	raw, err := zstd.Decompress(data)
	if err != nil {
		return Summary{}, fmt.Errorf("snapshot: %w", err)
	}
	var sum Summary
	if err := decMode.Unmarshal(raw, &sum); err != nil {
		return Summary{}, fmt.Errorf("snapshot: decoding: %w", err)
	}
	if sum.Version != Version {
		return Summary{}, fmt.Errorf("%w: %d", ErrVersion, sum.Version)
	}
	return sum, nil
}
