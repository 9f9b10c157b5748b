package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/orders"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	CartUC     *usecase.CartUseCase
	PlaceOrder *orders.PlaceOrderUseCase
	OrderQuery *orders.QueryUseCase
	Receipt    *orders.ReceiptUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Lectura de categorías y productos es
// pública; el resto requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authRequired := AuthMiddleware(deps.JWTSecret)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Categories (lectura pública, escritura protegida)
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", authRequired, categoryHandler.Create)
	categories.Put("/:id", authRequired, categoryHandler.Update)
	categories.Delete("/:id", authRequired, categoryHandler.Delete)

	// Products (lectura pública, escritura protegida con check de dueño)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authRequired, productHandler.Create)
	products.Put("/:id", authRequired, productHandler.Update)
	products.Delete("/:id", authRequired, productHandler.Delete)
	products.Post("/:id/upload-image", authRequired, productHandler.UploadImage)

	// Cart (protegido)
	cart := api.Group("/cart", authRequired)
	cartHandler := NewCartHandler(deps.CartUC)
	cart.Get("/", cartHandler.Get)
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:id", cartHandler.UpdateItem)
	cart.Delete("/items/:id", cartHandler.RemoveItem)

	// Orders (protegido)
	ordersGroup := api.Group("/orders", authRequired)
	orderHandler := NewOrderHandler(deps.PlaceOrder, deps.OrderQuery, deps.Receipt)
	ordersGroup.Post("/", orderHandler.Place)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/receipt", orderHandler.DownloadReceipt)
}
