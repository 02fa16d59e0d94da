package entity

import "time"

type Product struct {
	ID          int       `json:"id"`
	SellerID    int       `json:"vendedor_id"`
	SellerName  string    `json:"vendedor,omitempty"`
	CategoryID  int       `json:"categoria_id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Price       float64   `json:"precio"`
	Stock       int       `json:"stock"`
	Image       string    `json:"imagen,omitempty"`
	CreatedAt   time.Time `json:"fecha_creacion"`
}
