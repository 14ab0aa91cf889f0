package orders

import (
	"encoding/json"
	"time"
)

const (
	EventPedidoCreated   = "PedidoCreated"
	EventPedidoCancelled = "PedidoCancelled"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type PedidoCreatedPayload struct {
	PedidoID    int64  `json:"pedido_id"`
	UsuarioID   int64  `json:"usuario_id"`
	ProductoID  int64  `json:"producto_id"`
	Cantidad    int    `json:"cantidad"`
	PrecioTotal string `json:"precio_total"`
}

type PedidoCancelledPayload struct {
	PedidoID   int64 `json:"pedido_id"`
	ProductoID int64 `json:"producto_id"`
	Cantidad   int   `json:"cantidad"`
}
