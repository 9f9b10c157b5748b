package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// GetOrCreateByUser devuelve el carrito del usuario; si no existe lo crea.
// El ON CONFLICT sobre user_id hace la operación segura ante requests concurrentes.
func (r *CartRepo) GetOrCreateByUser(userID int64) (*entity.Cart, error) {
	query := `
		INSERT INTO carts (user_id, created_at, updated_at)
		VALUES ($1, now(), now())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = carts.updated_at
		RETURNING id, user_id, created_at, updated_at`
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	items, err := r.itemsFor(c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

// UpsertItem inserta la línea o acumula la cantidad si el producto ya está en el carrito.
func (r *CartRepo) UpsertItem(item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity`
	err := r.q.QueryRow(context.Background(), query,
		item.CartID, item.ProductID, item.Quantity,
	).Scan(&item.ID, &item.Quantity)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// GetItem obtiene una línea del carrito por ID.
func (r *CartRepo) GetItem(itemID int64) (*entity.CartItem, error) {
	query := `SELECT id, cart_id, product_id, quantity FROM cart_items WHERE id = $1`
	var it entity.CartItem
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&it.ID, &it.CartID, &it.ProductID, &it.Quantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &it, nil
}

// UpdateItemQuantity fija la cantidad de una línea existente.
func (r *CartRepo) UpdateItemQuantity(itemID int64, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE cart_items SET quantity = $2 WHERE id = $1`, itemID, quantity)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// DeleteItem elimina una línea del carrito.
func (r *CartRepo) DeleteItem(itemID int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

func (r *CartRepo) itemsFor(cartID int64) ([]entity.CartItem, error) {
	query := `SELECT id, cart_id, product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	var items []entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
