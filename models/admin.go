package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AdminUser represents an administrative account with access to the
// dashboard, export and email routes
type AdminUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Active       bool               `bson:"active" json:"active"`
	Roles        []string           `bson:"roles" json:"roles"`
	CreatedAt    interface{}        `bson:"createdAt" json:"createdAt"`
}
