package entity

import "time"

// Conversation is one row of the conversation list: the counterpart plus
// a preview of the latest message. The list is replaced wholesale on each
// fetch; there is no incremental merge at this level.
type Conversation struct {
	ID              int       `json:"id"`
	CounterpartID   int       `json:"usuario_id"`
	CounterpartName string    `json:"nombre_usuario"`
	LastMessage     string    `json:"ultimo_mensaje"`
	UpdatedAt       time.Time `json:"fecha_actualizacion"`
	UnreadCount     int       `json:"no_leidos"`
}

// MessageDelivery tags a message's reconciliation state. Messages decoded
// from the backend carry the zero value and count as confirmed; Pending
// marks a locally-synthesized placeholder awaiting the server-assigned
// record. A failed send purges its placeholder, so there is no lingering
// failed state.
type MessageDelivery string

const (
	DeliveryConfirmed MessageDelivery = ""
	DeliveryPending   MessageDelivery = "pending"
)

type Message struct {
	ID         int       `json:"id"`
	SenderID   int       `json:"emisor_id"`
	ReceiverID int       `json:"receptor_id"`
	Content    string    `json:"contenido"`
	CreatedAt  time.Time `json:"fecha_creacion"`
	Read       bool      `json:"leido"`

	// Local-only reconciliation fields, never sent over the wire.
	Delivery MessageDelivery `json:"-"`
	LocalID  string          `json:"-"`
}

func (m *Message) IsPending() bool {
	return m.Delivery == DeliveryPending
}
