package entity

import "time"

// Rating is one user's score for a product. The backend enforces one
// rating per (product, author); the client mirrors that by tracking the
// current user's rating as a distinguished singleton.
type Rating struct {
	ID        int       `json:"id"`
	ProductID int       `json:"producto_id"`
	UserID    int       `json:"usuario_id"`
	UserName  string    `json:"nombre_usuario,omitempty"`
	Score     int       `json:"puntuacion"`
	Comment   string    `json:"comentario"`
	CreatedAt time.Time `json:"fecha_creacion"`
}

type RatingStats struct {
	Total   int     `json:"total"`
	Average float64 `json:"promedio"`
}
