package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para la colocación del
// pedido: o se persisten pedido, items y descuentos de stock, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptLine línea del comprobante: nombre, cantidad y precios al momento
// de generarlo.
type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptPDFGenerator genera el PDF del comprobante de un pedido.
type ReceiptPDFGenerator interface {
	GenerateReceipt(ctx context.Context, order *entity.Order, user *entity.User, lines []ReceiptLine) ([]byte, error)
}
