package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// CartRepository define el puerto de persistencia para Cart y sus items.
type CartRepository interface {
	// GetOrCreateByUser devuelve el carrito del usuario, creándolo si no existe.
	GetOrCreateByUser(userID int64) (*entity.Cart, error)
	// UpsertItem inserta la línea o acumula la cantidad si el producto ya está en el carrito.
	UpsertItem(item *entity.CartItem) error
	GetItem(itemID int64) (*entity.CartItem, error)
	UpdateItemQuantity(itemID int64, quantity int) error
	DeleteItem(itemID int64) error
}
