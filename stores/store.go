package stores

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Henzp/tienda-plantas/models"
)

var (
	// ErrNotFound reports a missing document.
	ErrNotFound = errors.New("documento no encontrado")
	// ErrDuplicateEmail reports a registration against an email already in use.
	ErrDuplicateEmail = errors.New("el email ya está registrado")
	// ErrDuplicateOrder reports a banner order value already taken by an active item.
	ErrDuplicateOrder = errors.New("ya existe una imagen con ese orden")
	// ErrProductNotFound fails a whole checkout when a line item references a
	// missing or inactive product.
	ErrProductNotFound = errors.New("producto no encontrado")
	// ErrEmptyCart rejects a checkout without line items.
	ErrEmptyCart = errors.New("el carrito está vacío")
	// ErrUnavailable reports an unreachable document store.
	ErrUnavailable = errors.New("base de datos no disponible")
)

// InsufficientStockError fails a whole checkout, naming the product and the
// quantity actually available.
type InsufficientStockError struct {
	Producto   string
	Disponible int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d", e.Producto, e.Disponible)
}

// Counts summarizes the catalog for the diagnostics endpoint.
type Counts struct {
	Productos int64 `json:"productos"`
	Usuarios  int64 `json:"usuarios"`
	Banner    int64 `json:"banner"`
}

// Store is the document-store port. The Mongo implementation backs
// production; the in-memory one backs tests and the mock deployment.
type Store interface {
	Ping(ctx context.Context) error
	Counts(ctx context.Context) (Counts, error)

	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error)

	ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error)
	ProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id primitive.ObjectID, upd models.ProductUpdate) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error

	ListBanner(ctx context.Context, activeOnly bool) ([]models.BannerItem, error)
	CountBanner(ctx context.Context) (int64, error)
	CreateBannerItem(ctx context.Context, item *models.BannerItem) error
	UpdateBannerItem(ctx context.Context, id primitive.ObjectID, upd models.BannerUpdate) (*models.BannerItem, error)
	DeleteBannerItem(ctx context.Context, id primitive.ObjectID) error
	ReorderBanner(ctx context.Context, orders []models.BannerOrder) ([]models.BannerItem, error)

	// ProcessPurchase runs the checkout as a single atomic unit: per line
	// item it loads the product, validates stock and decrements it, then
	// records the sale with server-known unit prices and a fresh receipt
	// token. Any failure leaves every stock count untouched.
	ProcessPurchase(ctx context.Context, userID string, items []models.PurchaseItem) (*models.Sale, error)
}

// NewReceiptToken issues a receipt identifier unique with overwhelming
// probability: milliseconds since epoch plus a random suffix.
func NewReceiptToken() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + suffix
}

// NormalizeEmail lowercases and trims an email so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
