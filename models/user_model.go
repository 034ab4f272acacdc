package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered customer. The administrator is a configured
// credential pair, never a document in this collection.
type User struct {
	Id            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Nombre        string             `bson:"nombre" json:"nombre" validate:"required"`
	Apellido      string             `bson:"apellido" json:"apellido" validate:"required"`
	Email         string             `bson:"email" json:"email" validate:"required,email"`
	Password      string             `bson:"password" json:"-"`
	Telefono      string             `bson:"telefono,omitempty" json:"telefono,omitempty"`
	Direccion     string             `bson:"direccion,omitempty" json:"direccion,omitempty"`
	Comuna        string             `bson:"comuna,omitempty" json:"comuna,omitempty"`
	Region        string             `bson:"region,omitempty" json:"region,omitempty"`
	FechaRegistro time.Time          `bson:"fechaRegistro" json:"fechaRegistro"`
}

// ProfileUpdate carries the fields a user may change on their own profile.
type ProfileUpdate struct {
	Nombre    string `json:"nombre" validate:"required"`
	Apellido  string `json:"apellido"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Comuna    string `json:"comuna"`
	Region    string `json:"region"`
}
