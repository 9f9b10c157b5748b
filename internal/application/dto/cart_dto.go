package dto

import "time"

// AddCartItemRequest entrada para agregar un producto al carrito.
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// UpdateCartItemRequest entrada para fijar la cantidad de una línea.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// CartItemResponse línea del carrito con el resumen del producto anidado.
type CartItemResponse struct {
	ID       int64          `json:"id"`
	Quantity int            `json:"quantity"`
	Product  ProductSummary `json:"product"`
}

// CartResponse salida del carrito del usuario.
type CartResponse struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	Items     []CartItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
