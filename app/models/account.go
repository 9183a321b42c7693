package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles. The role is fixed at signup; there is no promotion
// workflow. Signup only accepts buyer/seller; admins come from the CLI.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Account is a marketplace identity.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username"      json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"` // never serialised
	Role         string             `bson:"role"          json:"role"`
	CreatedAt    time.Time          `bson:"created_at"    json:"created_at"`
}
