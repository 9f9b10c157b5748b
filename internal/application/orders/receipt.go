package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReceiptUseCase genera el comprobante PDF de un pedido ya colocado.
// Solo lectura: no toca stock ni pedidos.
type ReceiptUseCase struct {
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// DownloadReceipt recupera el pedido, verifica que el caller sea el dueño o
// admin y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el pedido no existe.
//   - domain.ErrForbidden        si el pedido no pertenece al caller.
func (uc *ReceiptUseCase) DownloadReceipt(
	ctx context.Context,
	userID int64, isAdmin bool, orderID int64,
) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	if !isAdmin && order.UserID != userID {
		return nil, "", domain.ErrForbidden
	}

	user, err := uc.userRepo.GetByID(order.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}

	lines := make([]ReceiptLine, 0, len(order.Items))
	for _, it := range order.Items {
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("receipt: obtener producto %d: %w", it.ProductID, err)
		}
		line := ReceiptLine{
			ProductName: fmt.Sprintf("producto %d", it.ProductID),
			Quantity:    it.Quantity,
			UnitPrice:   decimal.Zero,
		}
		if product != nil {
			line.ProductName = product.Name
			line.UnitPrice = product.Price
		}
		line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		lines = append(lines, line)
	}

	pdfBytes, err = uc.generator.GenerateReceipt(ctx, order, user, lines)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido-%d.pdf", order.ID), nil
}
