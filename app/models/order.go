package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses, in forward progression order.
const (
	StatusPending   = "Pending"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
)

var statusRank = map[string]int{
	StatusPending:   0,
	StatusShipped:   1,
	StatusDelivered: 2,
}

// ValidStatus reports whether s is one of the recognised order statuses.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from→to. Transitions are
// monotonic: same status is an idempotent no-op, backwards is rejected.
func CanTransition(from, to string) bool {
	f, okF := statusRank[from]
	t, okT := statusRank[to]
	return okF && okT && t >= f
}

// OrderItem is an immutable snapshot of one purchased line. Name and unit
// price are copied at placement time so the order still renders a consistent
// historical record after the product is edited or deleted.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product"  json:"product"`
	Name     string             `bson:"name"     json:"name"`
	Price    float64            `bson:"price"    json:"price"`
	Quantity int64              `bson:"quantity" json:"quantity"`
}

// Order is created atomically from the buyer's cart contents and never
// mutated afterwards except for its status, which only admins advance.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"             json:"id"`
	Buyer          primitive.ObjectID `bson:"buyer"                     json:"buyer"`
	BuyerUsername  string             `bson:"buyer_username"            json:"buyer_username"`
	Items          []OrderItem        `bson:"items"                     json:"items"`
	Status         string             `bson:"status"                    json:"status"`
	IdempotencyKey string             `bson:"idempotency_key,omitempty" json:"-"`
	CreatedAt      time.Time          `bson:"created_at"                json:"created_at"`
}

// Total is the order value as captured at placement time.
func (o Order) Total() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}
