package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marce316/go-pedidos/internal/domain"
)

type Repo struct{ DB *pgxpool.Pool }

const orderCols = `id, usuario_id, producto_id, cantidad, precio_total, estado, fecha_pedido`

func (r *Repo) Insert(ctx context.Context, o *domain.Order) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO pedidos (usuario_id, producto_id, cantidad, precio_total, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, fecha_pedido
	`, o.UserID, o.ProductID, o.Quantity, o.Total, o.Status).Scan(&o.ID, &o.CreatedAt)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM pedidos WHERE id = $1`, id).
		Scan(&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM pedidos WHERE id = $1`, id)
	return err
}

func (r *Repo) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	ct, err := r.DB.Exec(ctx, `UPDATE pedidos SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderCols+` FROM pedidos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderCols+` FROM pedidos WHERE usuario_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderCols+` FROM pedidos WHERE estado = $1 ORDER BY id`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM pedidos`).Scan(&n)
	return n, err
}

// ListWithDetails joins each pedido with its usuario and producto in a single
// query; display aggregation only, no business rule lives here.
func (r *Repo) ListWithDetails(ctx context.Context) ([]domain.OrderDetail, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.usuario_id, p.producto_id, p.cantidad, p.precio_total, p.estado, p.fecha_pedido,
		       u.id, u.nombre, u.email, COALESCE(u.telefono, ''), u.fecha_registro,
		       pr.id, pr.nombre, COALESCE(pr.descripcion, ''), pr.precio, pr.stock, COALESCE(pr.categoria, ''), pr.fecha_creacion
		FROM pedidos p
		JOIN usuarios u ON p.usuario_id = u.id
		JOIN productos pr ON p.producto_id = pr.id
		ORDER BY p.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderDetail
	for rows.Next() {
		var d domain.OrderDetail
		if err := rows.Scan(
			&d.Order.ID, &d.Order.UserID, &d.Order.ProductID, &d.Order.Quantity, &d.Order.Total, &d.Order.Status, &d.Order.CreatedAt,
			&d.User.ID, &d.User.Name, &d.User.Email, &d.User.Phone, &d.User.CreatedAt,
			&d.Product.ID, &d.Product.Name, &d.Product.Description, &d.Product.Price, &d.Product.Stock, &d.Product.Category, &d.Product.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
