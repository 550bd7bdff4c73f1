// Command sl2info prints the characters and inventories stored in a BND4
// save file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/pflag"

	"github.com/falk/sl2-go/internal/config"
	"github.com/falk/sl2-go/internal/logging"
	"github.com/falk/sl2-go/pkg/catalog"
	"github.com/falk/sl2-go/pkg/character"
	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/keys"
	"github.com/falk/sl2-go/pkg/save"
	"github.com/falk/sl2-go/pkg/snapshot"
)

var errUsage = errors.New("usage: sl2info [options] <save.sl2>")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "sl2info: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("sl2info", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		configPath  = flags.StringP("config", "c", "", "path to YAML config (default $"+config.EnvVar+")")
		keysPath    = flags.StringP("keys", "k", "", "key file overlaying the built-in keys")
		catalogPath = flags.String("catalog", "", "item catalog (YAML, optionally .zst)")
		logLevel    = flags.String("log-level", "", "log level: debug, info, warn, error")
		logFormat   = flags.String("log-format", "", "log format: text or json")
		workers     = flags.IntP("workers", "j", 0, "concurrent entries (0 = GOMAXPROCS)")
		showItems   = flags.BoolP("items", "i", false, "list every inventory item")
		exportPath  = flags.StringP("export", "o", "", "write a compressed CBOR snapshot to this path")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(stderr, errUsage)
		flags.PrintDefaults()
		return errUsage
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *keysPath != "" {
		cfg.KeysFile = *keysPath
	}
	if *catalogPath != "" {
		cfg.CatalogFile = *catalogPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if flags.Changed("workers") {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	ks := keys.Default()
	if cfg.KeysFile != "" {
		if err := ks.Load(cfg.KeysFile); err != nil {
			return fmt.Errorf("loading keys: %w", err)
		}
		logger.Debug("keys loaded", "path", cfg.KeysFile)
	}

	opts := []save.Option{
		save.WithKeys(ks),
		save.WithLogger(logger),
		save.WithDS3Sizes(cfg.DS3EntrySizes...),
	}
	if cfg.Workers > 0 {
		opts = append(opts, save.WithWorkers(cfg.Workers))
	}
	if cfg.CatalogFile != "" {
		set, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return err
		}
		opts = append(opts, save.WithCatalogs(set))
	}

	s, err := save.Open(ctx, flags.Arg(0), opts...)
	if err != nil {
		return err
	}

	printSave(stdout, s, *showItems)

	if *exportPath != "" {
		data, err := snapshot.Marshal(snapshot.Summarize(s))
		if err != nil {
			return err
		}
		if err := os.WriteFile(*exportPath, data, 0o644); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		logger.Info("snapshot written", "path", *exportPath, "bytes", len(data))
	}
	return nil
}

func printSave(w io.Writer, s *save.Save, showItems bool) {
	fmt.Fprintf(w, "Title: %s (%d entries)\n", s.Title, len(s.Container.Entries))
	if id := s.SteamID(); id != 0 {
		fmt.Fprintf(w, "Steam ID: %d\n", id)
	}

	chars := s.Characters()
	if len(chars) == 0 {
		fmt.Fprintln(w, "No characters.")
	}
	for _, r := range chars {
		b := r.Base()
		fmt.Fprintf(w, "Slot %d: %s  level %d  souls %d  HP %d/%d",
			b.Slot, b.Name, b.Level, b.Souls, b.HP.Current, b.HP.Max)
		switch c := r.(type) {
		case *character.DSR:
			fmt.Fprintf(w, "  class %s  covenant %s", c.ClassName(), c.CovenantName())
		case *character.DS3:
			fmt.Fprintf(w, "  estus %d/%d", c.EstusMax, c.AshenEstusMax)
		case *character.ER:
			fmt.Fprintf(w, "  FP %d/%d", c.FP.Current, c.FP.Max)
		}
		fmt.Fprintf(w, "\n  %d items, %d in storage, %d unknown\n", len(b.Items), len(b.Storage), b.UnknownItems)

		if showItems {
			for _, it := range b.Items {
				printItem(w, it)
			}
			for _, it := range b.Storage {
				printItem(w, it)
			}
		}
	}

	for _, slot := range slices.Sorted(maps.Keys(s.SlotErrors)) {
		fmt.Fprintf(w, "Slot %d: error: %v\n", slot, s.SlotErrors[slot])
	}
}

func printItem(w io.Writer, it items.Item) {
	name := it.Entry.Name
	if it.Upgrade > 0 {
		name = fmt.Sprintf("%s +%d", name, it.Upgrade)
	}
	where := ""
	if it.DeepStorage {
		where = " (storage)"
	}
	fmt.Fprintf(w, "    [%4d] %-40s x%-4d %s%s\n", it.Slot, name, it.Amount, it.Entry.Category, where)
}
