package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/chronowall/chronowall/cmd/common"
	"github.com/chronowall/chronowall/internal/backend"
	"github.com/chronowall/chronowall/internal/index"
	"github.com/urfave/cli"
)

const listKeyWidth = 12

func list(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return fail("list", "load-config", err)
	}
	b, err := backend.New(cfg.General.Backend, backend.Options{})
	if err != nil {
		return fail("list", "backend", err)
	}
	exts := b.SupportedExtensions()

	hours, err := index.ScanHours(osFs, cfg.Directories.Wallpaper, exts, index.ScanOptions{})
	if err != nil {
		return fail("list", "scan", err)
	}
	fmt.Printf("Backend %s reads: %s\n\n", b.Name(), strings.Join(exts.List(), ", "))
	fmt.Printf("Wallpapers (%s):\n", cfg.Directories.Wallpaper)
	for _, h := range hours.Keys() {
		items, _ := hours.Lookup(h)
		printItems(fmt.Sprintf("%02d", h), items)
	}

	if cfg.General.EnableSpecial {
		fmt.Printf("\nSpecial (%s):\n", cfg.Directories.Special)
		names, err := index.ScanNames(osFs, cfg.Directories.Special, exts)
		switch {
		case errors.Is(err, index.ErrNotFound):
			fmt.Println("  (missing)")
		case err != nil:
			return fail("list", "scan-special", err)
		default:
			for _, n := range names.Keys() {
				items, _ := names.Lookup(n)
				printItems(n, items)
			}
		}
		if len(cfg.SpecialEntries) > 0 {
			fmt.Println("\nSpecial entries:")
			keys := make([]string, 0, len(cfg.SpecialEntries))
			for k := range cfg.SpecialEntries {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("  %s -> %s\n", common.PadRight(k, listKeyWidth), cfg.SpecialEntries[k])
			}
		}
	}

	colls, err := index.Collections(osFs, cfg.Directories.Collections)
	if err != nil && !errors.Is(err, index.ErrNotFound) {
		return fail("list", "scan-collections", err)
	}
	if len(colls) > 0 {
		fmt.Printf("\nCollections (%s):\n  %s\n", cfg.Directories.Collections, strings.Join(colls, ", "))
	}
	return nil
}

func printItems(key string, items []index.Item) {
	for i, it := range items {
		if i > 0 {
			key = ""
		}
		fmt.Printf("  %s %-5s %s\n", common.PadRight(key, listKeyWidth), it.Kind, it.Path)
	}
}
