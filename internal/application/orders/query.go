package orders

import (
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// QueryUseCase lecturas de pedidos (fuera de transacción, sin mutación).
// Un caller no administrativo solo ve sus propios pedidos; un admin ve todos.
type QueryUseCase struct {
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo, userRepo: userRepo, productRepo: productRepo}
}

// ListOrders lista pedidos: todos para admin, solo propios para el resto.
func (uc *QueryUseCase) ListOrders(userID int64, isAdmin bool, limit, offset int) (*dto.OrderListResponse, error) {
	var (
		list []*entity.Order
		err  error
	)
	if isAdmin {
		list, err = uc.orderRepo.ListAll(limit, offset)
	} else {
		list, err = uc.orderRepo.ListByUser(userID, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.OrderResponse, 0, len(list))
	emails := map[int64]string{}
	products := map[int64]*entity.Product{}
	for _, o := range list {
		resp, err := uc.toOrderResponse(o, emails, products)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetOrder obtiene un pedido. Solo el dueño o un admin pueden verlo.
func (uc *QueryUseCase) GetOrder(userID int64, isAdmin bool, orderID int64) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return uc.toOrderResponse(order, map[int64]string{}, map[int64]*entity.Product{})
}

// toOrderResponse arma la respuesta con email del dueño y resumen de producto
// por línea. Los mapas cachean lookups entre pedidos del mismo listado.
func (uc *QueryUseCase) toOrderResponse(
	o *entity.Order,
	emails map[int64]string,
	products map[int64]*entity.Product,
) (*dto.OrderResponse, error) {
	email, ok := emails[o.UserID]
	if !ok {
		user, err := uc.userRepo.GetByID(o.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			email = user.Email
		}
		emails[o.UserID] = email
	}

	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		product, ok := products[it.ProductID]
		if !ok {
			var err error
			product, err = uc.productRepo.GetByID(it.ProductID)
			if err != nil {
				return nil, err
			}
			products[it.ProductID] = product
		}
		summary := dto.ProductSummary{ID: it.ProductID}
		if product != nil {
			summary.Name = product.Name
			summary.Price = product.Price
			summary.ImageURL = product.ImageURL
		}
		items = append(items, dto.OrderItemResponse{
			ID:       it.ID,
			Quantity: it.Quantity,
			Product:  summary,
		})
	}
	return &dto.OrderResponse{
		ID:        o.ID,
		UserEmail: email,
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}, nil
}
