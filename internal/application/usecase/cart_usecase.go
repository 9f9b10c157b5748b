package usecase

import (
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// CartUseCase maneja el carrito del usuario. Las cantidades no reservan
// stock: la validación de stock es exclusiva de la colocación del pedido.
type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart devuelve el carrito del usuario, creándolo si no existe.
func (uc *CartUseCase) GetCart(userID int64) (*dto.CartResponse, error) {
	cart, err := uc.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	return uc.toCartResponse(cart)
}

// AddItem agrega un producto al carrito (acumula cantidad si ya está).
// El producto debe existir; la cantidad debe ser positiva.
func (uc *CartUseCase) AddItem(userID int64, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if in.ProductID <= 0 || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{ProductID: in.ProductID}
	}
	cart, err := uc.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	item := &entity.CartItem{
		CartID:    cart.ID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	}
	if err := uc.cartRepo.UpsertItem(item); err != nil {
		return nil, err
	}
	return uc.GetCart(userID)
}

// UpdateItem fija la cantidad de una línea. Solo el dueño del carrito.
func (uc *CartUseCase) UpdateItem(userID, itemID int64, in dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ownItem(userID, itemID); err != nil {
		return nil, err
	}
	if err := uc.cartRepo.UpdateItemQuantity(itemID, in.Quantity); err != nil {
		return nil, err
	}
	return uc.GetCart(userID)
}

// RemoveItem elimina una línea del carrito. Solo el dueño del carrito.
func (uc *CartUseCase) RemoveItem(userID, itemID int64) (*dto.CartResponse, error) {
	if err := uc.ownItem(userID, itemID); err != nil {
		return nil, err
	}
	if err := uc.cartRepo.DeleteItem(itemID); err != nil {
		return nil, err
	}
	return uc.GetCart(userID)
}

// ownItem verifica que la línea exista y pertenezca al carrito del usuario.
func (uc *CartUseCase) ownItem(userID, itemID int64) error {
	item, err := uc.cartRepo.GetItem(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	cart, err := uc.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return err
	}
	if item.CartID != cart.ID {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *CartUseCase) toCartResponse(cart *entity.Cart) (*dto.CartResponse, error) {
	items := make([]dto.CartItemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		summary := dto.ProductSummary{ID: it.ProductID}
		if product != nil {
			summary.Name = product.Name
			summary.Price = product.Price
			summary.ImageURL = product.ImageURL
		}
		items = append(items, dto.CartItemResponse{
			ID:       it.ID,
			Quantity: it.Quantity,
			Product:  summary,
		})
	}
	return &dto.CartResponse{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     items,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}
