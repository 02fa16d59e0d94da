package entity

type CartItem struct {
	ID         int     `json:"id"`
	ProductID  int     `json:"producto_id"`
	Name       string  `json:"nombre"`
	Image      string  `json:"imagen"`
	UnitPrice  float64 `json:"precio"`
	Quantity   int     `json:"cantidad"`
	SellerName string  `json:"vendedor"`
}

func (i *CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
