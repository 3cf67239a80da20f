// Command menu-ingest imports a gzipped menu export into PostgreSQL.
// Exports come out of the restaurant's back office as NDJSON, one menu
// item per line, gzip-compressed; files with thousands of items stream
// through without loading everything into memory.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/orofoodhouse/oro-orders/internal/storage/postgres"
)

const progressEvery = 1000

type menuItemLine struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	DiscountPrice  decimal.Decimal `json:"discountPrice"`
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
	OnDiscount     bool            `json:"onDiscount"`
	Popular        bool            `json:"popular"`
	Available      bool            `json:"available"`
	Category       string          `json:"category"`
	Image          string          `json:"image"`
}

func main() {
	var (
		exportFile  string
		databaseURL string
	)

	flag.StringVar(&exportFile, "export-file", "data/menu-export.ndjson.gz", "gzipped NDJSON menu export")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, exportFile, databaseURL); err != nil {
		slog.Error("menu ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("menu ingest completed successfully")
}

func run(ctx context.Context, exportFile, databaseURL string) error {
	f, err := os.Open(exportFile)
	if err != nil {
		return errors.Wrap(err, "open export file")
	}
	defer f.Close()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrap(err, "open gzip stream")
	}
	defer gz.Close()

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	count, err := ingest(ctx, pool, gz)
	if err != nil {
		return err
	}

	slog.Info("ingest finished", slog.Int("items", count))
	return nil
}

// ingest streams NDJSON lines from r and upserts each item. Malformed
// lines abort the run so a truncated export cannot half-apply.
func ingest(ctx context.Context, pool *pgxpool.Pool, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var item menuItemLine
		if err := json.Unmarshal(line, &item); err != nil {
			return count, errors.Wrapf(err, "parse line %d", count+1)
		}
		if item.ID == "" {
			return count, errors.Errorf("line %d: missing item id", count+1)
		}

		if err := upsertItem(ctx, pool, &item); err != nil {
			return count, errors.Wrapf(err, "upsert item %s", item.ID)
		}

		count++
		if count%progressEvery == 0 {
			slog.Info("ingest progress", slog.Int("items", count))
		}
	}
	if err := scanner.Err(); err != nil {
		return count, errors.Wrap(err, "read export")
	}
	return count, nil
}

func upsertItem(ctx context.Context, pool *pgxpool.Pool, item *menuItemLine) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO menu_items (
			id, name, description, base_price, discount_price,
			effective_price, on_discount, popular, available, category, image
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			base_price = EXCLUDED.base_price,
			discount_price = EXCLUDED.discount_price,
			effective_price = EXCLUDED.effective_price,
			on_discount = EXCLUDED.on_discount,
			popular = EXCLUDED.popular,
			available = EXCLUDED.available,
			category = EXCLUDED.category,
			image = EXCLUDED.image`,
		item.ID, item.Name, item.Description, item.BasePrice, item.DiscountPrice,
		item.EffectivePrice, item.OnDiscount, item.Popular, item.Available,
		item.Category, item.Image,
	)
	return err
}
