package httpx

import (
	"time"

	"github.com/marce316/go-pedidos/internal/domain"
)

// API DTOs mirror the persisted layout: Spanish field names, ISO-8601
// timestamps, decimal prices flattened to JSON numbers.

type usuarioDTO struct {
	ID            int64  `json:"id"`
	Nombre        string `json:"nombre"`
	Email         string `json:"email"`
	Telefono      string `json:"telefono,omitempty"`
	FechaRegistro string `json:"fecha_registro"`
}

type productoDTO struct {
	ID            int64   `json:"id"`
	Nombre        string  `json:"nombre"`
	Descripcion   string  `json:"descripcion,omitempty"`
	Precio        float64 `json:"precio"`
	Stock         int     `json:"stock"`
	Categoria     string  `json:"categoria,omitempty"`
	FechaCreacion string  `json:"fecha_creacion"`
}

type pedidoDTO struct {
	ID          int64   `json:"id"`
	UsuarioID   int64   `json:"usuario_id"`
	ProductoID  int64   `json:"producto_id"`
	Cantidad    int     `json:"cantidad"`
	PrecioTotal float64 `json:"precio_total"`
	Estado      string  `json:"estado"`
	FechaPedido string  `json:"fecha_pedido"`
}

func toUsuarioDTO(u domain.User) usuarioDTO {
	return usuarioDTO{
		ID:            u.ID,
		Nombre:        u.Name,
		Email:         u.Email,
		Telefono:      u.Phone,
		FechaRegistro: u.CreatedAt.Format(time.RFC3339),
	}
}

func toProductoDTO(p domain.Product) productoDTO {
	return productoDTO{
		ID:            p.ID,
		Nombre:        p.Name,
		Descripcion:   p.Description,
		Precio:        p.Price.InexactFloat64(),
		Stock:         p.Stock,
		Categoria:     p.Category,
		FechaCreacion: p.CreatedAt.Format(time.RFC3339),
	}
}

func toPedidoDTO(o domain.Order) pedidoDTO {
	return pedidoDTO{
		ID:          o.ID,
		UsuarioID:   o.UserID,
		ProductoID:  o.ProductID,
		Cantidad:    o.Quantity,
		PrecioTotal: o.Total.InexactFloat64(),
		Estado:      string(o.Status),
		FechaPedido: o.CreatedAt.Format(time.RFC3339),
	}
}

func toUsuarioDTOs(us []domain.User) []usuarioDTO {
	out := make([]usuarioDTO, 0, len(us))
	for _, u := range us {
		out = append(out, toUsuarioDTO(u))
	}
	return out
}

func toProductoDTOs(ps []domain.Product) []productoDTO {
	out := make([]productoDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductoDTO(p))
	}
	return out
}

func toPedidoDTOs(os []domain.Order) []pedidoDTO {
	out := make([]pedidoDTO, 0, len(os))
	for _, o := range os {
		out = append(out, toPedidoDTO(o))
	}
	return out
}
