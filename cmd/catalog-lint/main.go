// Command catalog-lint validates catalog JSON files before deployment.
//
// It accepts any number of catalog files, plain or gzip-compressed, parses
// each one, and runs the pricing invariant checks that the API server
// assumes at runtime. Any finding makes the process exit non-zero.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/antojopicante/pedidos/internal/catalog"
	"github.com/antojopicante/pedidos/internal/pricing"
)

const maxCatalogBytes = 16 << 20

func main() {
	var workers int
	flag.IntVar(&workers, "workers", 4, "number of files validated concurrently")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		slog.Error("no catalog files given; usage: catalog-lint [flags] file.json [file.json.gz ...]")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, files, workers); err != nil {
		slog.Error("catalog lint failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("all catalog files are valid", slog.Int("files", len(files)))
}

func run(ctx context.Context, files []string, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := lintFile(path); err != nil {
				return errors.Wrapf(err, "lint %s", path)
			}
			slog.Info("file ok", slog.String("file", path))
			return nil
		})
	}

	return g.Wait()
}

func lintFile(path string) error {
	data, err := readCatalogFile(path)
	if err != nil {
		return err
	}

	reg, err := catalog.Parse(data)
	if err != nil {
		return errors.Wrap(err, "parse")
	}

	var findings []string
	report := func(format string, args ...any) {
		findings = append(findings, fmt.Sprintf(format, args...))
	}

	lintProducts(reg, report)
	lintZones(reg, report)

	if len(findings) > 0 {
		return errors.Errorf("%d findings:\n  %s", len(findings), strings.Join(findings, "\n  "))
	}
	return nil
}

// lintProducts checks that every product is actually orderable: at least one
// selectable size and a positive resolved price for every selectable
// combination.
func lintProducts(reg *catalog.Registry, report func(string, ...any)) {
	for i := range reg.Products() {
		p := &reg.Products()[i]

		sizes := p.AvailableSizes()
		if len(sizes) == 0 && !p.HasFixedPrice() {
			report("product %s: no available sizes and no fixed price", p.ID)
			continue
		}

		switch {
		case p.Category == catalog.CategoryGomitas:
			for _, v := range []catalog.Version{catalog.VersionAhogada, catalog.VersionPicosa} {
				hasPositive := false
				for _, s := range sizes {
					if pricing.BasePrice(p, v, s).IsPositive() {
						hasPositive = true
					}
				}
				if !hasPositive {
					report("product %s: version %s has no positive price in any size", p.ID, v)
				}
			}
		case p.HasFixedPrice():
			if !pricing.BasePrice(p, "", "").IsPositive() {
				report("product %s: fixed price is not positive", p.ID)
			}
		default:
			for _, s := range sizes {
				if !pricing.BasePrice(p, "", s).IsPositive() {
					report("product %s: size %s resolves to a non-positive price", p.ID, s)
				}
			}
		}

		if p.MaxToppings() < 0 {
			report("product %s: negative toppings cap", p.ID)
		}
	}

	if len(reg.Toppings()) == 0 {
		report("catalog has no toppings")
	}
	for _, x := range reg.Extras() {
		if !x.Price.IsPositive() {
			report("extra %s: price must be positive", x.ID)
		}
	}
}

// lintZones flags zones that carry a price of zero. A missing price is
// legitimate (cost confirmed over chat); an explicit zero is almost always a
// data entry mistake.
func lintZones(reg *catalog.Registry, report func(string, ...any)) {
	for _, z := range reg.Zones() {
		if z.Price != nil && !z.Price.IsPositive() {
			report("zone %s: explicit non-positive delivery price", z.ID)
		}
	}
}

// readCatalogFile reads a catalog file, transparently decompressing .gz.
func readCatalogFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "create gzip reader")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	data, err := io.ReadAll(io.LimitReader(r, maxCatalogBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	if len(data) > maxCatalogBytes {
		return nil, errors.New("file too large")
	}
	return data, nil
}
