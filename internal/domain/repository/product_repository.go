package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// Usado dentro de transacciones para garantizar consistencia del stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock persiste un nuevo valor de stock. Rechaza valores negativos.
	UpdateStock(productID int64, stock int) error
	// UpdateImageURL guarda la URL de la imagen subida (no toca stock ni precio).
	UpdateImageURL(productID int64, url string) error
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para el
	// check-and-decrement del stock dentro de la transacción del pedido.
	GetForUpdate(id int64) (*entity.Product, error)
	Delete(id int64) error
}
