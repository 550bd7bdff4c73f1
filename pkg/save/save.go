// Package save decodes a complete save file: container, decryption, title
// detection and every occupied character slot.
package save

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/falk/sl2-go/pkg/character"
	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/keys"
	"github.com/falk/sl2-go/pkg/sl2"
)

// ErrNoKey is returned when the key store lacks the detected title's key.
var ErrNoKey = errors.New("save: no key for title")

// Save is a decoded save file. It is not modified after Decode returns.
type Save struct {
	Title     sl2.Title
	Container *sl2.Container
	// Menu is the decoded menu entry for titles that have one.
	Menu *character.Menu
	// Slots holds one record per occupied slot; empty slots are nil.
	Slots [character.SlotCount]character.Record
	// SlotErrors holds per-slot failures that did not stop the decode.
	SlotErrors map[int]error
}

// Characters returns the occupied slots in slot order.
func (s *Save) Characters() []character.Record {
	var out []character.Record
	for _, r := range s.Slots {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// SteamID returns the account id stored in the menu entry, or 0.
func (s *Save) SteamID() uint64 {
	if s.Menu == nil {
		return 0
	}
	return s.Menu.SteamID
}

type config struct {
	keys     *keys.Store
	catalogs map[sl2.Title]items.Catalog
	logger   *slog.Logger
	workers  int
	detect   []sl2.DetectOption
}

// Option configures Decode.
type Option func(*config)

// WithKeys sets the key store. The default holds the built-in keys.
func WithKeys(k *keys.Store) Option {
	return func(c *config) { c.keys = k }
}

// WithCatalog sets the item catalog for one title.
func WithCatalog(title sl2.Title, cat items.Catalog) Option {
	return func(c *config) { c.catalogs[title] = cat }
}

// WithCatalogs sets item catalogs for several titles.
func WithCatalogs[C items.Catalog](cats map[sl2.Title]C) Option {
	return func(c *config) {
		for title, cat := range cats {
			c.catalogs[title] = cat
		}
	}
}

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithWorkers bounds the number of entries processed concurrently.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithDS3Sizes adds entry sizes that identify DS3 saves.
func WithDS3Sizes(sizes ...uint64) Option {
	return func(c *config) { c.detect = append(c.detect, sl2.WithDS3Sizes(sizes...)) }
}

// Open reads and decodes the save file at path.
func Open(ctx context.Context, path string, opts ...Option) (*Save, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(ctx, data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode decodes a save file held in memory.
//
// A malformed container or unsupported title fails the whole decode. An
// entry that fails to decrypt only loses its own slot, which is reported
// in SlotErrors.
func Decode(ctx context.Context, data []byte, opts ...Option) (*Save, error) {
	cfg := config{
		keys:     keys.Default(),
		catalogs: make(map[sl2.Title]items.Catalog),
		logger:   slog.Default(),
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}
	start := time.Now()

	c, err := sl2.Parse(data)
	if err != nil {
		return nil, err
	}
	title, err := sl2.Detect(c, cfg.detect...)
	if err != nil {
		return nil, err
	}
	logger := cfg.logger.With("title", title.String())

	var key []byte
	if title.Encrypted() {
		if key = cfg.keys.Get(title.KeyName()); key == nil {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNoKey, title, title.KeyName())
		}
	}
	if err := decryptAll(ctx, c, key, cfg.workers); err != nil {
		return nil, err
	}

	s := &Save{Title: title, Container: c, SlotErrors: make(map[int]error)}
	if title == sl2.DS2 {
		logger.Info("container decrypted; character layout not supported", "entries", len(c.Entries))
		return s, nil
	}

	slots, err := s.occupiedSlots()
	if err != nil {
		return nil, err
	}

	dec, err := character.NewDecoder(title, cfg.catalogs[title], logger)
	if err != nil {
		return nil, err
	}

	var todo []int
	for _, slot := range slots {
		e := c.Entry(slot)
		if e == nil {
			return nil, fmt.Errorf("%w: missing slot entry %d", sl2.ErrMalformedContainer, slot)
		}
		if e.Err != nil {
			logger.Warn("skipping slot", "slot", slot, "error", e.Err)
			s.SlotErrors[slot] = e.Err
			continue
		}
		todo = append(todo, slot)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for _, slot := range todo {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := dec.Decode(slot, c.Entries[slot].Content)
			if err != nil {
				return err
			}
			// DS3 slots store no name; the menu holds it.
			if rec != nil && s.Menu != nil && rec.Base().Name == "" {
				rec.Base().Name = s.Menu.Names[slot]
			}
			s.Slots[slot] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("decoded save",
		"entries", len(c.Entries),
		"characters", len(s.Characters()),
		"slot_errors", len(s.SlotErrors),
		"elapsed", time.Since(start),
	)
	return s, nil
}

func decryptAll(ctx context.Context, c *sl2.Container, key []byte, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, e := range c.Entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Failures stay on the entry.
			_ = e.Decrypt(key)
			return nil
		})
	}
	return g.Wait()
}

// occupiedSlots returns the slot indices that hold characters. DSR slots are
// self-describing, so every slot is a candidate; the other titles read the
// menu entry.
func (s *Save) occupiedSlots() ([]int, error) {
	if s.Title == sl2.DSR {
		slots := make([]int, character.SlotCount)
		for i := range slots {
			slots[i] = i
		}
		return slots, nil
	}

	menu := s.Container.Entry(character.MenuEntry)
	if menu == nil {
		return nil, fmt.Errorf("%w: missing menu entry", sl2.ErrMalformedContainer)
	}
	if menu.Err != nil {
		return nil, menu.Err
	}
	m, err := character.ParseMenu(s.Title, menu.Content)
	if err != nil {
		return nil, err
	}
	s.Menu = m

	var slots []int
	for i, ok := range m.Occupied {
		if ok {
			slots = append(slots, i)
		}
	}
	return slots, nil
}
