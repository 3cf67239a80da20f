package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orofoodhouse/oro-orders/internal/domain/menu"
)

var _ menu.Repository = (*MenuRepository)(nil)

// MenuRepository implements menu.Repository backed by PostgreSQL.
type MenuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository returns a MenuRepository that uses the given pool.
func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

const menuItemColumns = `id, name, description, base_price, discount_price,
	effective_price, on_discount, popular, available, category, image`

// List returns the whole menu with variations and add-ons attached,
// ordered by category then name.
func (r *MenuRepository) List(ctx context.Context) ([]menu.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachOptions(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID returns a single menu item with its customization options. It
// returns menu.ErrNotFound when no matching item exists.
func (r *MenuRepository) GetByID(ctx context.Context, id string) (*menu.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting menu item %q: %w", id, err)
	}

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, menu.ErrNotFound
	}

	if err := r.attachOptions(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Categories returns the menu sections ordered by position.
func (r *MenuRepository) Categories(ctx context.Context) ([]menu.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, position FROM categories ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []menu.Category
	for rows.Next() {
		var c menu.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return out, nil
}

func scanItems(rows pgx.Rows) ([]menu.Item, error) {
	defer rows.Close()

	var items []menu.Item
	for rows.Next() {
		var it menu.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description,
			&it.BasePrice, &it.DiscountPrice, &it.EffectivePrice,
			&it.OnDiscount, &it.Popular, &it.Available,
			&it.Category, &it.Image,
		); err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading menu items: %w", err)
	}
	return items, nil
}

// attachOptions loads variations and add-ons for the given items in two
// batch queries and distributes them in stored order.
func (r *MenuRepository) attachOptions(ctx context.Context, items []menu.Item) error {
	if len(items) == 0 {
		return nil
	}

	byID := make(map[string]*menu.Item, len(items))
	ids := make([]string, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
		ids[i] = items[i].ID
	}

	vrows, err := r.pool.Query(ctx,
		`SELECT menu_item_id, id, name, price
		 FROM variations WHERE menu_item_id = ANY($1) ORDER BY position, id`, ids)
	if err != nil {
		return errors.Wrap(err, "listing variations")
	}
	defer vrows.Close()
	for vrows.Next() {
		var (
			itemID string
			v      menu.Variation
		)
		if err := vrows.Scan(&itemID, &v.ID, &v.Name, &v.Price); err != nil {
			return errors.Wrap(err, "scanning variation")
		}
		if it := byID[itemID]; it != nil {
			it.Variations = append(it.Variations, v)
		}
	}
	if err := vrows.Err(); err != nil {
		return errors.Wrap(err, "reading variations")
	}

	arows, err := r.pool.Query(ctx,
		`SELECT menu_item_id, id, name, price, category
		 FROM add_ons WHERE menu_item_id = ANY($1) ORDER BY position, id`, ids)
	if err != nil {
		return errors.Wrap(err, "listing add-ons")
	}
	defer arows.Close()
	for arows.Next() {
		var (
			itemID string
			a      menu.AddOn
		)
		if err := arows.Scan(&itemID, &a.ID, &a.Name, &a.Price, &a.Category); err != nil {
			return errors.Wrap(err, "scanning add-on")
		}
		if it := byID[itemID]; it != nil {
			it.AddOns = append(it.AddOns, a)
		}
	}
	if err := arows.Err(); err != nil {
		return errors.Wrap(err, "reading add-ons")
	}

	return nil
}
