package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	Id            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Nombre        string             `bson:"nombre" json:"nombre" validate:"required"`
	Descripcion   string             `bson:"descripcion" json:"descripcion" validate:"required"`
	Precio        float64            `bson:"precio" json:"precio" validate:"gte=0"`
	Categoria     string             `bson:"categoria" json:"categoria" validate:"required"`
	Stock         int                `bson:"stock" json:"stock" validate:"gte=0"`
	Imagenes      []string           `bson:"imagenes" json:"imagenes"`
	Activo        bool               `bson:"activo" json:"activo"`
	FechaCreacion time.Time          `bson:"fechaCreacion" json:"fechaCreacion"`
}

// ProductUpdate is a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Nombre      *string   `json:"nombre"`
	Descripcion *string   `json:"descripcion"`
	Precio      *float64  `json:"precio"`
	Categoria   *string   `json:"categoria"`
	Stock       *int      `json:"stock"`
	Imagenes    *[]string `json:"imagenes"`
	Activo      *bool     `json:"activo"`
}
