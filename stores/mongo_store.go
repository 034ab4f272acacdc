package stores

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Henzp/tienda-plantas/configs"
	"github.com/Henzp/tienda-plantas/models"
)

// MongoStore implements Store over the official driver. Collections mirror
// the original deployment: usuarios, productos, banner, ventas.
type MongoStore struct {
	client    *mongo.Client
	usuarios  *mongo.Collection
	productos *mongo.Collection
	banner    *mongo.Collection
	ventas    *mongo.Collection
}

func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{
		client:    client,
		usuarios:  configs.GetCollection(client, "usuarios"),
		productos: configs.GetCollection(client, "productos"),
		banner:    configs.GetCollection(client, "banner"),
		ventas:    configs.GetCollection(client, "ventas"),
	}
}

// EnsureIndexes creates the unique index behind the email invariant. The
// check-then-insert in CreateUser races under concurrency; the index is
// the backstop, surfaced through the duplicate-key mapping there.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.usuarios.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return wrapErr(err)
}

// wrapErr maps driver failures onto the store taxonomy.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if errors.Is(err, mongo.ErrClientDisconnected) || errors.Is(err, context.DeadlineExceeded) ||
		mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return ErrUnavailable
	}
	return err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return wrapErr(s.client.Ping(ctx, readpref.Primary()))
}

func (s *MongoStore) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	var err error
	if c.Productos, err = s.productos.CountDocuments(ctx, bson.M{}); err != nil {
		return c, wrapErr(err)
	}
	if c.Usuarios, err = s.usuarios.CountDocuments(ctx, bson.M{}); err != nil {
		return c, wrapErr(err)
	}
	if c.Banner, err = s.banner.CountDocuments(ctx, bson.M{}); err != nil {
		return c, wrapErr(err)
	}
	return c, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)

	err := s.usuarios.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return wrapErr(err)
	}

	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	user.FechaRegistro = time.Now()
	_, err = s.usuarios.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return wrapErr(err)
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.usuarios.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (s *MongoStore) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.usuarios.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (s *MongoStore) UpdateUserProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	set := bson.M{
		"nombre":    upd.Nombre,
		"apellido":  upd.Apellido,
		"telefono":  upd.Telefono,
		"direccion": upd.Direccion,
		"comuna":    upd.Comuna,
		"region":    upd.Region,
	}
	after := options.After
	var user models.User
	err := s.usuarios.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after}).Decode(&user)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (s *MongoStore) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	filter := bson.M{}
	if activeOnly {
		filter["activo"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "fechaCreacion", Value: -1}})
	cursor, err := s.productos.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, wrapErr(err)
	}
	return products, nil
}

func (s *MongoStore) ProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.productos.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &product, nil
}

func (s *MongoStore) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Id.IsZero() {
		product.Id = primitive.NewObjectID()
	}
	product.Activo = true
	product.FechaCreacion = time.Now()
	if product.Imagenes == nil {
		product.Imagenes = []string{}
	}
	_, err := s.productos.InsertOne(ctx, product)
	return wrapErr(err)
}

func (s *MongoStore) UpdateProduct(ctx context.Context, id primitive.ObjectID, upd models.ProductUpdate) (*models.Product, error) {
	set := bson.M{}
	if upd.Nombre != nil {
		set["nombre"] = *upd.Nombre
	}
	if upd.Descripcion != nil {
		set["descripcion"] = *upd.Descripcion
	}
	if upd.Precio != nil {
		set["precio"] = *upd.Precio
	}
	if upd.Categoria != nil {
		set["categoria"] = *upd.Categoria
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}
	if upd.Imagenes != nil {
		set["imagenes"] = *upd.Imagenes
	}
	if upd.Activo != nil {
		set["activo"] = *upd.Activo
	}
	if len(set) == 0 {
		return s.ProductByID(ctx, id)
	}
	after := options.After
	var product models.Product
	err := s.productos.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after}).Decode(&product)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &product, nil
}

// DeleteProduct flips the active flag; the document stays for sale history.
func (s *MongoStore) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.productos.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"activo": false}})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListBanner(ctx context.Context, activeOnly bool) ([]models.BannerItem, error) {
	filter := bson.M{}
	if activeOnly {
		filter["activo"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "orden", Value: 1}})
	cursor, err := s.banner.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	items := []models.BannerItem{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, wrapErr(err)
	}
	return items, nil
}

func (s *MongoStore) CountBanner(ctx context.Context) (int64, error) {
	n, err := s.banner.CountDocuments(ctx, bson.M{})
	return n, wrapErr(err)
}

func (s *MongoStore) CreateBannerItem(ctx context.Context, item *models.BannerItem) error {
	err := s.banner.FindOne(ctx, bson.M{"orden": item.Orden, "activo": true}).Err()
	if err == nil {
		return ErrDuplicateOrder
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return wrapErr(err)
	}

	if item.Id.IsZero() {
		item.Id = primitive.NewObjectID()
	}
	item.Activo = true
	now := time.Now()
	item.FechaCreacion = now
	item.FechaActualizacion = now
	_, err = s.banner.InsertOne(ctx, item)
	return wrapErr(err)
}

func (s *MongoStore) UpdateBannerItem(ctx context.Context, id primitive.ObjectID, upd models.BannerUpdate) (*models.BannerItem, error) {
	if upd.Orden != nil {
		err := s.banner.FindOne(ctx, bson.M{"orden": *upd.Orden, "activo": true, "_id": bson.M{"$ne": id}}).Err()
		if err == nil {
			return nil, ErrDuplicateOrder
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, wrapErr(err)
		}
	}

	set := bson.M{"fechaActualizacion": time.Now()}
	if upd.Orden != nil {
		set["orden"] = *upd.Orden
	}
	if upd.Imagen != nil {
		set["imagen"] = *upd.Imagen
	}
	if upd.Alt != nil {
		set["alt"] = *upd.Alt
	}
	if upd.Activo != nil {
		set["activo"] = *upd.Activo
	}
	after := options.After
	var item models.BannerItem
	err := s.banner.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after}).Decode(&item)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &item, nil
}

func (s *MongoStore) DeleteBannerItem(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.banner.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"activo": false, "fechaActualizacion": time.Now()}})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ReorderBanner(ctx context.Context, orders []models.BannerOrder) ([]models.BannerItem, error) {
	for _, o := range orders {
		id, err := primitive.ObjectIDFromHex(o.Id)
		if err != nil {
			continue
		}
		_, err = s.banner.UpdateOne(ctx, bson.M{"_id": id},
			bson.M{"$set": bson.M{"orden": o.Orden, "fechaActualizacion": time.Now()}})
		if err != nil {
			return nil, wrapErr(err)
		}
	}
	return s.ListBanner(ctx, true)
}

func (s *MongoStore) ProcessPurchase(ctx context.Context, userID string, items []models.PurchaseItem) (*models.Sale, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	session, err := s.client.StartSession()
	if err != nil {
		return nil, wrapErr(err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		sale := &models.Sale{
			Id:            primitive.NewObjectID(),
			UsuarioId:     userID,
			Items:         make([]models.SaleItem, 0, len(items)),
			Boleta:        NewReceiptToken(),
			Estado:        "completada",
			FechaCreacion: time.Now(),
		}

		for _, it := range items {
			productID, err := primitive.ObjectIDFromHex(it.ProductoId)
			if err != nil {
				return nil, ErrProductNotFound
			}

			var product models.Product
			if err := s.productos.FindOne(sc, bson.M{"_id": productID}).Decode(&product); err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return nil, ErrProductNotFound
				}
				return nil, wrapErr(err)
			}
			if !product.Activo {
				return nil, ErrProductNotFound
			}
			if product.Stock < it.Cantidad {
				return nil, &InsufficientStockError{Producto: product.Nombre, Disponible: product.Stock}
			}

			// The stock guard in the filter keeps a concurrent checkout from
			// driving stock negative even outside snapshot isolation.
			res, err := s.productos.UpdateOne(sc,
				bson.M{"_id": productID, "stock": bson.M{"$gte": it.Cantidad}},
				bson.M{"$inc": bson.M{"stock": -it.Cantidad}})
			if err != nil {
				return nil, wrapErr(err)
			}
			if res.ModifiedCount == 0 {
				return nil, &InsufficientStockError{Producto: product.Nombre, Disponible: product.Stock}
			}

			sale.Items = append(sale.Items, models.SaleItem{
				ProductoId:     productID,
				Nombre:         product.Nombre,
				Cantidad:       it.Cantidad,
				PrecioUnitario: product.Precio,
			})
			sale.Total += product.Precio * float64(it.Cantidad)
		}

		if _, err := s.ventas.InsertOne(sc, sale); err != nil {
			return nil, wrapErr(err)
		}
		return sale, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Sale), nil
}
