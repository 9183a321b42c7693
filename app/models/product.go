package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a listing owned by exactly one seller. It is created
// unapproved, and any seller edit drops it back to unapproved.
//
// Quantity is the available stock and must never go negative; the only safe
// mutator is the conditional decrement in ProductRepository, never
// read-modify-write.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"   json:"id"`
	Seller         primitive.ObjectID `bson:"seller"          json:"seller"`
	SellerUsername string             `bson:"seller_username" json:"seller_username"` // denormalized for admin views
	Name           string             `bson:"name"            json:"name"`
	Description    string             `bson:"description"     json:"description"`
	Price          float64            `bson:"price"           json:"price"`
	Quantity       int64              `bson:"quantity"        json:"quantity"`
	Category       string             `bson:"category"        json:"category"`
	Images         []string           `bson:"images"          json:"images"`
	Approved       bool               `bson:"approved"        json:"approved"`
	CreatedAt      time.Time          `bson:"created_at"      json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"      json:"updated_at"`
}
