package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos más subida de imagen.
// El Stock solo lo descuenta la colocación de pedidos; acá únicamente se
// fija el stock inicial al crear.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	imageStore   ports.ImageStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	imageStore ports.ImageStore,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, userRepo: userRepo, imageStore: imageStore}
}

// Create crea un producto para el usuario autenticado. Un admin puede
// asignarlo a otro usuario vía in.UserID.
func (uc *ProductUseCase) Create(actingUserID int64, isAdmin bool, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Stock < 0 || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	ownerID := actingUserID
	if isAdmin && in.UserID != 0 {
		owner, err := uc.userRepo.GetByID(in.UserID)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			ownerID = owner.ID
		}
	}

	now := time.Now()
	product := &entity.Product{
		UserID:      ownerID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación (lectura pública).
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un producto. Solo el dueño o un admin pueden hacerlo.
func (uc *ProductUseCase) Update(actingUserID int64, isAdmin bool, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if !isAdmin && product.UserID != actingUserID {
		return nil, domain.ErrForbidden
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Solo el dueño o un admin pueden hacerlo.
func (uc *ProductUseCase) Delete(actingUserID int64, isAdmin bool, id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !isAdmin && product.UserID != actingUserID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// UploadImage sube la imagen al almacenamiento externo y guarda la URL en el
// producto. Solo el dueño o un admin pueden hacerlo.
func (uc *ProductUseCase) UploadImage(ctx context.Context, actingUserID int64, isAdmin bool, id int64, filename string, data []byte) (*dto.ProductResponse, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && product.UserID != actingUserID {
		return nil, domain.ErrForbidden
	}
	url, err := uc.imageStore.UploadProductImage(ctx, id, filename, data)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateImageURL(id, url); err != nil {
		return nil, err
	}
	product.ImageURL = url
	return toProductResponse(product), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
