package entity

// Book is a point-in-time copy of every recorded collection
type Book struct {
	Products  []Product  `json:"products"`
	Purchases []Purchase `json:"purchases"`
	Sales     []Sale     `json:"sales"`
	Expenses  []Expense  `json:"expenses"`
}

// FindSale returns the sale with the given id
func (b *Book) FindSale(id string) (Sale, bool) {
	for _, s := range b.Sales {
		if s.ID == id {
			return s, true
		}
	}
	return Sale{}, false
}

// FindPurchase returns the purchase with the given id
func (b *Book) FindPurchase(id string) (Purchase, bool) {
	for _, p := range b.Purchases {
		if p.ID == id {
			return p, true
		}
	}
	return Purchase{}, false
}

// FindProduct returns the product with the given id
func (b *Book) FindProduct(id string) (Product, bool) {
	for _, p := range b.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
