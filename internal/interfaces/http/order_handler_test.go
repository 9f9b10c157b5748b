package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/orders"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para ejercitar el contrato HTTP de pedidos
// ──────────────────────────────────────────────────────────────────────────────

type stubUserRepo struct{ user *entity.User }

func (r *stubUserRepo) Create(*entity.User) error { return nil }
func (r *stubUserRepo) GetByID(id int64) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, nil
}
func (r *stubUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }

type stubProductRepo struct{ products map[int64]*entity.Product }

func (r *stubProductRepo) Create(*entity.Product) error { return nil }
func (r *stubProductRepo) GetByID(id int64) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *stubProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *stubProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) Update(*entity.Product) error             { return nil }
func (r *stubProductRepo) UpdateStock(id int64, stock int) error {
	if stock < 0 {
		return domain.ErrNegativeStock
	}
	r.products[id].Stock = stock
	return nil
}
func (r *stubProductRepo) UpdateImageURL(int64, string) error { return nil }
func (r *stubProductRepo) Delete(int64) error                 { return nil }

type stubOrderRepo struct {
	nextID int64
	items  []entity.OrderItem
}

func (r *stubOrderRepo) Create(o *entity.Order) error {
	r.nextID++
	o.ID = r.nextID
	return nil
}
func (r *stubOrderRepo) CreateItem(it *entity.OrderItem) error {
	r.items = append(r.items, *it)
	return nil
}
func (r *stubOrderRepo) GetByID(int64) (*entity.Order, error) { return nil, nil }
func (r *stubOrderRepo) ListByUser(int64, int, int) ([]*entity.Order, error) {
	return nil, nil
}
func (r *stubOrderRepo) ListAll(int, int) ([]*entity.Order, error) { return nil, nil }

// stubTxRunner ejecuta fn directamente; el rollback no se simula acá porque
// estos tests verifican el contrato HTTP, no la atomicidad (eso se cubre en
// los tests del caso de uso).
type stubTxRunner struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func (tr *stubTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(tr.orderRepo, tr.productRepo)
}

// buildOrderApp arma la app Fiber con el caso de uso de pedidos sobre fakes:
// un comprador (ID 42) y un producto (ID 10, stock 5).
func buildOrderApp(t *testing.T) *fiber.App {
	t.Helper()
	userRepo := &stubUserRepo{user: &entity.User{ID: testUserID, Email: testEmail, IsActive: true}}
	productRepo := &stubProductRepo{products: map[int64]*entity.Product{
		10: {ID: 10, Name: "Teclado", Price: decimal.NewFromFloat(25.50), Stock: 5},
	}}
	txRunner := &stubTxRunner{orderRepo: &stubOrderRepo{}, productRepo: productRepo}
	placeUC := orders.NewPlaceOrderUseCase(txRunner, userRepo)

	app := fiber.New()
	api := app.Group("/api")
	ordersGroup := api.Group("/orders", apphttp.AuthMiddleware(testJWTSecret))
	handler := apphttp.NewOrderHandler(placeUC, nil, nil)
	ordersGroup.Post("/", handler.Place)
	return app
}

func postOrder(t *testing.T, app *fiber.App, token, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests POST /api/orders
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: pedido válido → 201 con el pedido y el resumen de producto por línea.
func TestPostOrder_Valido_Retorna201(t *testing.T) {
	app := buildOrderApp(t)
	resp := postOrder(t, app, tokenFor(t, testUserID, testEmail, false),
		`{"items":[{"product_id":10,"quantity":2}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.OrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testEmail, body.UserEmail)
	require.Len(t, body.Items, 1)
	assert.Equal(t, int64(10), body.Items[0].Product.ID)
	assert.Equal(t, 2, body.Items[0].Quantity)
}

// Caso 2: sin token → 401 antes de tocar el caso de uso.
func TestPostOrder_SinToken_Retorna401(t *testing.T) {
	app := buildOrderApp(t)
	resp := postOrder(t, app, "", `{"items":[{"product_id":10,"quantity":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: stock insuficiente → 400 INSUFFICIENT_STOCK con disponible y solicitado.
func TestPostOrder_StockInsuficiente_Retorna400(t *testing.T) {
	app := buildOrderApp(t)
	resp := postOrder(t, app, tokenFor(t, testUserID, testEmail, false),
		`{"items":[{"product_id":10,"quantity":9}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, int64(10), body.ProductID)
	require.NotNil(t, body.Available)
	require.NotNil(t, body.Requested)
	assert.Equal(t, 5, *body.Available)
	assert.Equal(t, 9, *body.Requested)
}

// Caso 4: producto inexistente → 400 PRODUCT_NOT_FOUND con el id que falló.
func TestPostOrder_ProductoInexistente_Retorna400(t *testing.T) {
	app := buildOrderApp(t)
	resp := postOrder(t, app, tokenFor(t, testUserID, testEmail, false),
		`{"items":[{"product_id":9999,"quantity":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "PRODUCT_NOT_FOUND", body.Code)
	assert.Equal(t, int64(9999), body.ProductID)
}

// Caso 5: pedido vacío → 400 VALIDATION.
func TestPostOrder_SinItems_Retorna400(t *testing.T) {
	app := buildOrderApp(t)
	resp := postOrder(t, app, tokenFor(t, testUserID, testEmail, false), `{"items":[]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body.Code)
}

// Caso 6: cuerpo que no es JSON → 400 INVALID_BODY.
func TestPostOrder_CuerpoInvalido_Retorna400(t *testing.T) {
	app := buildOrderApp(t)
	resp := postOrder(t, app, tokenFor(t, testUserID, testEmail, false), `esto no es json`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_BODY", body.Code)
}
