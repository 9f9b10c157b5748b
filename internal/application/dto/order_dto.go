package dto

import "time"

// OrderItemRequest una línea solicitada: (producto, cantidad).
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderRequest entrada para colocar un pedido. Los items se procesan en
// el orden recibido; el primer fallo aborta todo.
type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemResponse línea del pedido con el resumen del producto anidado.
type OrderItemResponse struct {
	ID       int64          `json:"id"`
	Quantity int            `json:"quantity"`
	Product  ProductSummary `json:"product"`
}

// OrderResponse salida de un pedido: id, email del dueño, items y timestamps.
type OrderResponse struct {
	ID        int64               `json:"id"`
	UserEmail string              `json:"user_email"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
