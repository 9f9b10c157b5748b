package orders_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos: un estado compartido sobre el que operan
// los repos fake. memTxRunner serializa las "transacciones" con un mutex (el
// equivalente del FOR UPDATE por producto) y restaura un snapshot ante error,
// emulando el Rollback de PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	users     map[int64]*entity.User
	products  map[int64]entity.Product
	orders    map[int64]entity.Order
	items     []entity.OrderItem
	nextOrder int64
	nextItem  int64
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[int64]*entity.User{},
		products:  map[int64]entity.Product{},
		orders:    map[int64]entity.Order{},
		nextOrder: 1,
		nextItem:  1,
	}
}

func (s *memStore) addUser(u entity.User) { s.users[u.ID] = &u }

func (s *memStore) addProduct(p entity.Product) { s.products[p.ID] = p }

func (s *memStore) stockOf(productID int64) int { return s.products[productID].Stock }

type snapshot struct {
	products  map[int64]entity.Product
	orders    map[int64]entity.Order
	items     []entity.OrderItem
	nextOrder int64
	nextItem  int64
}

func (s *memStore) snapshot() snapshot {
	products := make(map[int64]entity.Product, len(s.products))
	for id, p := range s.products {
		products[id] = p
	}
	orders := make(map[int64]entity.Order, len(s.orders))
	for id, o := range s.orders {
		orders[id] = o
	}
	items := make([]entity.OrderItem, len(s.items))
	copy(items, s.items)
	return snapshot{
		products:  products,
		orders:    orders,
		items:     items,
		nextOrder: s.nextOrder,
		nextItem:  s.nextItem,
	}
}

func (s *memStore) restore(snap snapshot) {
	s.products = snap.products
	s.orders = snap.orders
	s.items = snap.items
	s.nextOrder = snap.nextOrder
	s.nextItem = snap.nextItem
}

// memUserRepo implementa repository.UserRepository.
type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(u *entity.User) error {
	r.s.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// memProductRepo implementa repository.ProductRepository.
type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate en el fake es igual a GetByID: la exclusión la da el mutex
// del memTxRunner, que serializa transacciones completas.
func (r *memProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	ids := make([]int64, 0, len(r.s.products))
	for id := range r.s.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		p := r.s.products[id]
		out = append(out, &p)
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) UpdateStock(productID int64, stock int) error {
	if stock < 0 {
		return domain.ErrNegativeStock
	}
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	r.s.products[productID] = p
	return nil
}

func (r *memProductRepo) UpdateImageURL(productID int64, url string) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.ImageURL = url
	r.s.products[productID] = p
	return nil
}

func (r *memProductRepo) Delete(id int64) error {
	delete(r.s.products, id)
	return nil
}

// memOrderRepo implementa repository.OrderRepository.
type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(o *entity.Order) error {
	o.ID = r.s.nextOrder
	r.s.nextOrder++
	r.s.orders[o.ID] = *o
	return nil
}

func (r *memOrderRepo) CreateItem(it *entity.OrderItem) error {
	it.ID = r.s.nextItem
	r.s.nextItem++
	r.s.items = append(r.s.items, *it)
	return nil
}

func (r *memOrderRepo) GetByID(id int64) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	o.Items = r.itemsFor(id)
	return &o, nil
}

func (r *memOrderRepo) ListByUser(userID int64, limit, offset int) ([]*entity.Order, error) {
	return r.list(func(o entity.Order) bool { return o.UserID == userID }, limit, offset)
}

func (r *memOrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	return r.list(func(entity.Order) bool { return true }, limit, offset)
}

func (r *memOrderRepo) list(keep func(entity.Order) bool, limit, offset int) ([]*entity.Order, error) {
	ids := make([]int64, 0, len(r.s.orders))
	for id, o := range r.s.orders {
		if keep(o) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*entity.Order, 0, len(ids))
	for i, id := range ids {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		o := r.s.orders[id]
		o.Items = r.itemsFor(id)
		out = append(out, &o)
	}
	return out, nil
}

func (r *memOrderRepo) itemsFor(orderID int64) []entity.OrderItem {
	var items []entity.OrderItem
	for _, it := range r.s.items {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	return items
}

// memTxRunner implementa orders.TxRunner: toma el lock del store (transacciones
// serializadas), guarda un snapshot y lo restaura si fn falla.
type memTxRunner struct{ s *memStore }

func (tr *memTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	tr.s.mu.Lock()
	defer tr.s.mu.Unlock()

	snap := tr.s.snapshot()
	if err := fn(&memOrderRepo{s: tr.s}, &memProductRepo{s: tr.s}); err != nil {
		tr.s.restore(snap)
		return err
	}
	return nil
}

// Verificación de interfaces en compilación.
var (
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.ProductRepository = (*memProductRepo)(nil)
	_ repository.OrderRepository   = (*memOrderRepo)(nil)
)
