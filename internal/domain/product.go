package domain

// Product is a sellable catalog item. Cart entries are value copies of it.
type Product struct {
	ID       int64   `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Category string  `json:"category" bson:"category"`
	Price    float64 `json:"price" bson:"price"`
}
