// Package catalog loads static item catalogs from YAML files.
//
// A catalog file holds one list per title:
//
//	dsr:
//	  - type: 0x00000000
//	    id: 200000
//	    name: Dagger
//	    category: weapons_shields
//	ds3:
//	  - ...
//
// Files ending in .zst are zstd-compressed YAML.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/sl2"
	"github.com/falk/sl2-go/pkg/zstd"
)

// Record is one catalog line.
type Record struct {
	Type        uint32 `yaml:"type"`
	ID          uint32 `yaml:"id"`
	items.Entry `yaml:",inline"`
}

type file struct {
	DSR []Record `yaml:"dsr"`
	DS2 []Record `yaml:"ds2"`
	DS3 []Record `yaml:"ds3"`
	ER  []Record `yaml:"er"`
}

// Set holds one catalog table per title.
type Set map[sl2.Title]items.Table

// For returns the catalog for a title, or nil when the set has none.
func (s Set) For(t sl2.Title) items.Catalog {
	if table, ok := s[t]; ok {
		return table
	}
	return nil
}

// NewTable builds a table from records. Duplicate keys are an error.
func NewTable(records []Record) (items.Table, error) {
	t := make(items.Table, len(records))
	for _, r := range records {
		k := items.Key{TypeCode: r.Type, BaseID: r.ID}
		if prev, ok := t[k]; ok {
			return nil, fmt.Errorf("duplicate entry type %#x id %d: %q and %q", r.Type, r.ID, prev.Name, r.Name)
		}
		t[k] = r.Entry
	}
	return t, nil
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (Set, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	set := make(Set)
	for title, records := range map[sl2.Title][]Record{
		sl2.DSR: f.DSR,
		sl2.DS2: f.DS2,
		sl2.DS3: f.DS3,
		sl2.ER:  f.ER,
	} {
		if len(records) == 0 {
			continue
		}
		table, err := NewTable(records)
		if err != nil {
			return nil, fmt.Errorf("%s catalog: %w", title, err)
		}
		set[title] = table
	}
	return set, nil
}

// Load reads a catalog file, decompressing it first if it ends in .zst.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if strings.HasSuffix(path, ".zst") {
		if data, err = zstd.Decompress(data); err != nil {
			return nil, fmt.Errorf("decompressing catalog %s: %w", path, err)
		}
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
