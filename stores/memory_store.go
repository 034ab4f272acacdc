package stores

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Henzp/tienda-plantas/models"
)

// MemoryStore keeps every collection in process memory behind one mutex,
// the same shape the mock deployment uses. One lock per operation also
// gives the checkout its all-or-nothing guarantee: validation and the
// stock writes happen under the same critical section.
type MemoryStore struct {
	mu        sync.Mutex
	usuarios  map[primitive.ObjectID]models.User
	productos map[primitive.ObjectID]models.Product
	banner    map[primitive.ObjectID]models.BannerItem
	ventas    map[primitive.ObjectID]models.Sale
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		usuarios:  map[primitive.ObjectID]models.User{},
		productos: map[primitive.ObjectID]models.Product{},
		banner:    map[primitive.ObjectID]models.BannerItem{},
		ventas:    map[primitive.ObjectID]models.Sale{},
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Counts(ctx context.Context) (Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts{
		Productos: int64(len(s.productos)),
		Usuarios:  int64(len(s.usuarios)),
		Banner:    int64(len(s.banner)),
	}, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = NormalizeEmail(user.Email)
	for _, u := range s.usuarios {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	user.FechaRegistro = time.Now()
	s.usuarios[user.Id] = *user
	return nil
}

func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = NormalizeEmail(email)
	for _, u := range s.usuarios {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.usuarios[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := u
	return &user, nil
}

func (s *MemoryStore) UpdateUserProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.usuarios[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Nombre = upd.Nombre
	u.Apellido = upd.Apellido
	u.Telefono = upd.Telefono
	u.Direccion = upd.Direccion
	u.Comuna = upd.Comuna
	u.Region = upd.Region
	s.usuarios[id] = u
	user := u
	return &user, nil
}

func (s *MemoryStore) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := []models.Product{}
	for _, p := range s.productos {
		if activeOnly && !p.Activo {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].FechaCreacion.After(products[j].FechaCreacion)
	})
	return products, nil
}

func (s *MemoryStore) ProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productos[id]
	if !ok {
		return nil, ErrNotFound
	}
	product := p
	return &product, nil
}

func (s *MemoryStore) CreateProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.Id.IsZero() {
		product.Id = primitive.NewObjectID()
	}
	product.Activo = true
	product.FechaCreacion = time.Now()
	if product.Imagenes == nil {
		product.Imagenes = []string{}
	}
	s.productos[product.Id] = *product
	return nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, id primitive.ObjectID, upd models.ProductUpdate) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productos[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Nombre != nil {
		p.Nombre = *upd.Nombre
	}
	if upd.Descripcion != nil {
		p.Descripcion = *upd.Descripcion
	}
	if upd.Precio != nil {
		p.Precio = *upd.Precio
	}
	if upd.Categoria != nil {
		p.Categoria = *upd.Categoria
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Imagenes != nil {
		p.Imagenes = *upd.Imagenes
	}
	if upd.Activo != nil {
		p.Activo = *upd.Activo
	}
	s.productos[id] = p
	product := p
	return &product, nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productos[id]
	if !ok {
		return ErrNotFound
	}
	p.Activo = false
	s.productos[id] = p
	return nil
}

func (s *MemoryStore) ListBanner(ctx context.Context, activeOnly bool) ([]models.BannerItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listBannerLocked(activeOnly), nil
}

func (s *MemoryStore) listBannerLocked(activeOnly bool) []models.BannerItem {
	items := []models.BannerItem{}
	for _, b := range s.banner {
		if activeOnly && !b.Activo {
			continue
		}
		items = append(items, b)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Orden < items[j].Orden })
	return items
}

func (s *MemoryStore) CountBanner(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.banner)), nil
}

func (s *MemoryStore) CreateBannerItem(ctx context.Context, item *models.BannerItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.banner {
		if b.Activo && b.Orden == item.Orden {
			return ErrDuplicateOrder
		}
	}
	if item.Id.IsZero() {
		item.Id = primitive.NewObjectID()
	}
	item.Activo = true
	now := time.Now()
	item.FechaCreacion = now
	item.FechaActualizacion = now
	s.banner[item.Id] = *item
	return nil
}

func (s *MemoryStore) UpdateBannerItem(ctx context.Context, id primitive.ObjectID, upd models.BannerUpdate) (*models.BannerItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.banner[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Orden != nil {
		for otherID, other := range s.banner {
			if otherID != id && other.Activo && other.Orden == *upd.Orden {
				return nil, ErrDuplicateOrder
			}
		}
		b.Orden = *upd.Orden
	}
	if upd.Imagen != nil {
		b.Imagen = *upd.Imagen
	}
	if upd.Alt != nil {
		b.Alt = *upd.Alt
	}
	if upd.Activo != nil {
		b.Activo = *upd.Activo
	}
	b.FechaActualizacion = time.Now()
	s.banner[id] = b
	item := b
	return &item, nil
}

func (s *MemoryStore) DeleteBannerItem(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.banner[id]
	if !ok {
		return ErrNotFound
	}
	b.Activo = false
	b.FechaActualizacion = time.Now()
	s.banner[id] = b
	return nil
}

func (s *MemoryStore) ReorderBanner(ctx context.Context, orders []models.BannerOrder) ([]models.BannerItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range orders {
		id, err := primitive.ObjectIDFromHex(o.Id)
		if err != nil {
			continue
		}
		b, ok := s.banner[id]
		if !ok {
			continue
		}
		b.Orden = o.Orden
		b.FechaActualizacion = time.Now()
		s.banner[id] = b
	}
	return s.listBannerLocked(true), nil
}

func (s *MemoryStore) ProcessPurchase(ctx context.Context, userID string, items []models.PurchaseItem) (*models.Sale, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sale := models.Sale{
		Id:            primitive.NewObjectID(),
		UsuarioId:     userID,
		Items:         make([]models.SaleItem, 0, len(items)),
		Boleta:        NewReceiptToken(),
		Estado:        "completada",
		FechaCreacion: time.Now(),
	}

	// Validate every line item before touching any stock count.
	newStock := make(map[primitive.ObjectID]int, len(items))
	for _, it := range items {
		id, err := primitive.ObjectIDFromHex(it.ProductoId)
		if err != nil {
			return nil, ErrProductNotFound
		}
		p, ok := s.productos[id]
		if !ok || !p.Activo {
			return nil, ErrProductNotFound
		}
		remaining, seen := newStock[id]
		if !seen {
			remaining = p.Stock
		}
		if remaining < it.Cantidad {
			return nil, &InsufficientStockError{Producto: p.Nombre, Disponible: remaining}
		}
		newStock[id] = remaining - it.Cantidad

		sale.Items = append(sale.Items, models.SaleItem{
			ProductoId:     id,
			Nombre:         p.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: p.Precio,
		})
		sale.Total += p.Precio * float64(it.Cantidad)
	}

	for id, stock := range newStock {
		p := s.productos[id]
		p.Stock = stock
		s.productos[id] = p
	}
	s.ventas[sale.Id] = sale

	out := sale
	return &out, nil
}
