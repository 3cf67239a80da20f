// Command seed-db loads the menu, categories, payment methods, and site
// settings into PostgreSQL. It runs migrations first and upserts every
// row, so re-running it against a live database is safe.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/orofoodhouse/oro-orders/db"
	"github.com/orofoodhouse/oro-orders/internal/storage/postgres"
)

type seedFile struct {
	Settings       settingsJSON        `json:"settings"`
	Categories     []categoryJSON      `json:"categories"`
	PaymentMethods []paymentMethodJSON `json:"paymentMethods"`
	Items          []menuItemJSON      `json:"items"`
}

type settingsJSON struct {
	SiteName         string `json:"siteName"`
	SiteLogo         string `json:"siteLogo"`
	MessengerChannel string `json:"messengerChannel"`
	CurrencySymbol   string `json:"currencySymbol"`
}

type categoryJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type paymentMethodJSON struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	QRCodeURL     string `json:"qrCodeUrl"`
	Position      int    `json:"position"`
}

type menuItemJSON struct {
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
	Variations     []variationJSON `json:"variations"`
	AddOns         []addOnJSON     `json:"addOns"`
}

type variationJSON struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Position int             `json:"position"`
}

type addOnJSON struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Position int             `json:"position"`
}

func main() {
	var (
		databaseURL string
		menuFile    string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&menuFile, "menu-file", "", "path to a menu JSON file (default: embedded dataset)")
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

	if err := run(ctx, databaseURL, menuFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, menuFile string) error {
	data := db.SeedMenu
	if menuFile != "" {
		var err error
		if data, err = os.ReadFile(menuFile); err != nil {
			return errors.Wrap(err, "read menu file")
		}
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return errors.Wrap(err, "parse menu data")
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// The tables have no cross-table constraints except item options, which
	// seedItems orders internally, so each table seeds in parallel.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return seedSettings(gctx, pool, seed.Settings) })
	g.Go(func() error { return seedCategories(gctx, pool, seed.Categories) })
	g.Go(func() error { return seedPaymentMethods(gctx, pool, seed.PaymentMethods) })
	g.Go(func() error { return seedItems(gctx, pool, seed.Items) })
	return g.Wait()
}

func seedSettings(ctx context.Context, pool *pgxpool.Pool, s settingsJSON) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO site_settings (id, site_name, site_logo, messenger_channel, currency_symbol)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			site_name = EXCLUDED.site_name,
			site_logo = EXCLUDED.site_logo,
			messenger_channel = EXCLUDED.messenger_channel,
			currency_symbol = EXCLUDED.currency_symbol`,
		s.SiteName, s.SiteLogo, s.MessengerChannel, s.CurrencySymbol,
	)
	if err != nil {
		return errors.Wrap(err, "upsert site settings")
	}

	slog.Info("upserted site settings", slog.String("site_name", s.SiteName))
	return nil
}

func seedCategories(ctx context.Context, pool *pgxpool.Pool, categories []categoryJSON) error {
	for _, c := range categories {
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				position = EXCLUDED.position`,
			c.ID, c.Name, c.Position,
		)
		if err != nil {
			return errors.Wrapf(err, "upsert category %s", c.ID)
		}
	}

	slog.Info("upserted categories", slog.Int("count", len(categories)))
	return nil
}

func seedPaymentMethods(ctx context.Context, pool *pgxpool.Pool, methods []paymentMethodJSON) error {
	for _, m := range methods {
		_, err := pool.Exec(ctx, `
			INSERT INTO payment_methods (id, name, account_number, account_name, qr_code_url, position)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				account_number = EXCLUDED.account_number,
				account_name = EXCLUDED.account_name,
				qr_code_url = EXCLUDED.qr_code_url,
				position = EXCLUDED.position`,
			m.ID, m.Name, m.AccountNumber, m.AccountName, m.QRCodeURL, m.Position,
		)
		if err != nil {
			return errors.Wrapf(err, "upsert payment method %s", m.ID)
		}

		slog.Info("upserted payment method", slog.String("id", m.ID), slog.String("name", m.Name))
	}
	return nil
}

func seedItems(ctx context.Context, pool *pgxpool.Pool, items []menuItemJSON) error {
	for _, it := range items {
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
			it.ID, it.Name, it.Description, it.BasePrice, it.DiscountPrice,
			it.EffectivePrice, it.OnDiscount, it.Popular, it.Available, it.Category, it.Image,
		)
		if err != nil {
			return errors.Wrapf(err, "upsert menu item %s", it.ID)
		}

		for _, v := range it.Variations {
			_, err := pool.Exec(ctx, `
				INSERT INTO variations (id, menu_item_id, name, price, position)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (id) DO UPDATE SET
					menu_item_id = EXCLUDED.menu_item_id,
					name = EXCLUDED.name,
					price = EXCLUDED.price,
					position = EXCLUDED.position`,
				v.ID, it.ID, v.Name, v.Price, v.Position,
			)
			if err != nil {
				return errors.Wrapf(err, "upsert variation %s", v.ID)
			}
		}

		for _, a := range it.AddOns {
			_, err := pool.Exec(ctx, `
				INSERT INTO add_ons (id, menu_item_id, name, price, category, position)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO UPDATE SET
					menu_item_id = EXCLUDED.menu_item_id,
					name = EXCLUDED.name,
					price = EXCLUDED.price,
					category = EXCLUDED.category,
					position = EXCLUDED.position`,
				a.ID, it.ID, a.Name, a.Price, a.Category, a.Position,
			)
			if err != nil {
				return errors.Wrapf(err, "upsert add-on %s", a.ID)
			}
		}

		slog.Info("upserted menu item",
			slog.String("id", it.ID),
			slog.Int("variations", len(it.Variations)),
			slog.Int("add_ons", len(it.AddOns)),
		)
	}
	return nil
}
