package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one quantity-bearing line per (buyer, product) pair, enforced
// unique by index. Re-adding the same product overwrites the quantity.
//
// No stock check happens at add time; carts may hold more than available
// stock. Placement is the enforcement point.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Buyer     primitive.ObjectID `bson:"buyer"         json:"buyer"`
	Product   primitive.ObjectID `bson:"product"       json:"product"`
	Quantity  int64              `bson:"quantity"      json:"quantity"`
	CreatedAt time.Time          `bson:"created_at"    json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"    json:"updated_at"`
}

// CartLine is a cart item joined with its current product state, as returned
// by cart listing and consumed by order placement.
type CartLine struct {
	Item    CartItem `json:"item"`
	Product Product  `json:"product"`
}
