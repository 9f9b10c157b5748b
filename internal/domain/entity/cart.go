package entity

import "time"

// Cart representa el carrito de un usuario (uno por usuario).
// Las cantidades del carrito son deseos: no reservan stock; el stock se
// valida recién al colocar el pedido.
type Cart struct {
	ID        int64
	UserID    int64
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem es una línea del carrito. Un producto aparece a lo sumo una vez
// por carrito; agregar el mismo producto acumula la cantidad.
type CartItem struct {
	ID        int64
	CartID    int64
	ProductID int64
	Quantity  int // siempre > 0
}
