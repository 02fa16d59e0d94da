package entity

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pendiente"
	StatusProcessing OrderStatus = "procesando"
	StatusCompleted  OrderStatus = "completado"
	StatusCancelled  OrderStatus = "cancelado"
	StatusDelivered  OrderStatus = "entregado"
)

var legalTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled, StatusDelivered:
		return true
	}
	return false
}

// Terminal statuses admit no further edits.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ProductID int     `json:"producto_id"`
	Name      string  `json:"nombre"`
	Image     string  `json:"imagen"`
	Quantity  int     `json:"cantidad"`
	UnitPrice float64 `json:"precio"`
}

// Order is an order as the buyer sees it in their purchase history.
type Order struct {
	ID        int         `json:"id"`
	CreatedAt time.Time   `json:"fecha_creacion"`
	Status    OrderStatus `json:"estado"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"productos"`
}

// SellerOrder is an order as the seller sees it: only the buyer's display
// name and the line items containing the seller's products. Status
// transitions are server-authoritative; the client proposes a new status
// and reflects it locally on success.
type SellerOrder struct {
	ID        int         `json:"id"`
	BuyerName string      `json:"nombre_comprador"`
	CreatedAt time.Time   `json:"fecha_creacion"`
	Status    OrderStatus `json:"estado"`
	Items     []OrderItem `json:"productos"`
}
