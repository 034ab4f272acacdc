package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BannerItem is one slide of the homepage carousel. Orden is unique among
// active items.
type BannerItem struct {
	Id                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Orden              int                `bson:"orden" json:"orden" validate:"required,min=1,max=10"`
	Imagen             string             `bson:"imagen" json:"imagen" validate:"required"`
	Alt                string             `bson:"alt" json:"alt" validate:"required"`
	Activo             bool               `bson:"activo" json:"activo"`
	FechaCreacion      time.Time          `bson:"fechaCreacion" json:"fechaCreacion"`
	FechaActualizacion time.Time          `bson:"fechaActualizacion" json:"fechaActualizacion"`
}

// BannerUpdate is a partial update; nil fields are left untouched.
type BannerUpdate struct {
	Orden  *int    `json:"orden"`
	Imagen *string `json:"imagen"`
	Alt    *string `json:"alt"`
	Activo *bool   `json:"activo"`
}

// BannerOrder is one entry of a bulk reorder request.
type BannerOrder struct {
	Id    string `json:"id"`
	Orden int    `json:"orden"`
}
