package entity

import "time"

// Order representa un pedido de un usuario. Se crea exactamente una vez por
// colocación exitosa y es inmutable después: sus items quedan fijos al crear.
type Order struct {
	ID        int64
	UserID    int64
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem es una línea del pedido: (producto, cantidad). Se crea solo como
// parte de la colocación del pedido; nunca se actualiza ni borra por separado.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int // siempre > 0
}
