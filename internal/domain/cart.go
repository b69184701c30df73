package domain

import "time"

// DefaultCartID is the id of the single cart shared by every client.
const DefaultCartID = "shared"

// Cart is the persisted shape of a cart for document stores.
type Cart struct {
	ID        string    `bson:"_id,omitempty"`
	CartID    string    `bson:"cart_id"`
	Items     []Product `bson:"items"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
