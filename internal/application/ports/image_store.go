package ports

import "context"

// ImageStore define el puerto para el almacenamiento externo de imágenes
// (Cloudinary en producción). Completamente desacoplado de pedidos: la
// colocación de un pedido nunca pasa por acá.
type ImageStore interface {
	// UploadProductImage sube la imagen y devuelve la URL pública para
	// guardar en el producto.
	UploadProductImage(ctx context.Context, productID int64, filename string, data []byte) (string, error)
}
