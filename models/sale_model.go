package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleItem is a purchased line item priced at the server-known unit price,
// never the client's.
type SaleItem struct {
	ProductoId     primitive.ObjectID `bson:"productoId" json:"productoId"`
	Nombre         string             `bson:"nombre" json:"nombre"`
	Cantidad       int                `bson:"cantidad" json:"cantidad"`
	PrecioUnitario float64            `bson:"precioUnitario" json:"precioUnitario"`
}

// Sale is written exactly once per completed checkout. Boleta is the unique
// receipt token; only Estado may change afterwards.
type Sale struct {
	Id            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UsuarioId     string             `bson:"usuarioId" json:"usuarioId"`
	Items         []SaleItem         `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	Boleta        string             `bson:"boleta" json:"boleta"`
	Estado        string             `bson:"estado" json:"estado"`
	FechaCreacion time.Time          `bson:"fechaCreacion" json:"fechaCreacion"`
}

// PurchaseItem is one (product, quantity) pair of a checkout request.
type PurchaseItem struct {
	ProductoId string `json:"productoId"`
	Cantidad   int    `json:"cantidad"`
}
