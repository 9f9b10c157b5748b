package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto publicado por un usuario.
// Stock es la única cifra mutable que toca el flujo de pedidos: se descuenta
// dentro de la transacción de creación del pedido y nunca queda negativa.
type Product struct {
	ID          int64
	UserID      int64 // dueño del producto
	CategoryID  int64
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta, >= 0
	Stock       int             // unidades disponibles, >= 0
	ImageURL    string          // URL en Cloudinary, vacío si no tiene imagen
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
