package orders

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// PlaceOrderUseCase coloca pedidos de forma transaccional: valida stock con
// bloqueo de fila (SELECT FOR UPDATE), crea pedido + items y descuenta stock,
// con Commit/Rollback todo-o-nada.
type PlaceOrderUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
}

// NewPlaceOrderUseCase construye el caso de uso.
func NewPlaceOrderUseCase(txRunner TxRunner, userRepo repository.UserRepository) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{txRunner: txRunner, userRepo: userRepo}
}

// PlaceOrder procesa los items en el orden recibido dentro de una transacción:
//
//  1. crea la cabecera del pedido para el usuario;
//  2. por item: bloquea la fila del producto, valida existencia y stock,
//     crea la línea y persiste stock - cantidad;
//  3. el primer fallo aborta todo (Rollback): ningún pedido, línea ni
//     descuento de stock de esta llamada queda visible.
//
// Retorna *domain.ProductNotFoundError o *domain.InsufficientStockError con
// el product_id que falló, o domain.ErrInvalidInput si el request está mal formado.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, userID int64, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	// Validación de frontera: la transacción recién arranca con input bien formado.
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	var resp *dto.OrderResponse

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		order := &entity.Order{UserID: userID, CreatedAt: now, UpdatedAt: now}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		items := make([]dto.OrderItemResponse, 0, len(in.Items))
		for _, req := range in.Items {
			// Bloquea la fila del producto: el check-and-decrement queda
			// serializado frente a pedidos concurrentes sobre el mismo producto.
			product, err := productRepo.GetForUpdate(req.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &domain.ProductNotFoundError{ProductID: req.ProductID}
			}
			if req.Quantity > product.Stock {
				return &domain.InsufficientStockError{
					ProductID: req.ProductID,
					Available: product.Stock,
					Requested: req.Quantity,
				}
			}

			item := &entity.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  req.Quantity,
			}
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
			if err := productRepo.UpdateStock(product.ID, product.Stock-req.Quantity); err != nil {
				return err
			}

			items = append(items, dto.OrderItemResponse{
				ID:       item.ID,
				Quantity: item.Quantity,
				Product: dto.ProductSummary{
					ID:       product.ID,
					Name:     product.Name,
					Price:    product.Price,
					ImageURL: product.ImageURL,
				},
			})
		}

		resp = &dto.OrderResponse{
			ID:        order.ID,
			UserEmail: user.Email,
			Items:     items,
			CreatedAt: order.CreatedAt,
			UpdatedAt: order.UpdatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
