package products

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marce316/go-pedidos/internal/domain"
)

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, nombre, COALESCE(descripcion, ''), precio, stock, COALESCE(categoria, ''), fecha_creacion`

func (r *Repo) Create(ctx context.Context, p *domain.Product) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO productos (nombre, descripcion, precio, stock, categoria)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''))
		RETURNING id, fecha_creacion
	`, p.Name, p.Description, p.Price, p.Stock, p.Category).Scan(&p.ID, &p.CreatedAt)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM productos WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) SearchByName(ctx context.Context, fragment string) ([]domain.Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM productos WHERE nombre ILIKE '%' || $1 || '%'`, fragment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// GetByCategory is an exact category match.
func (r *Repo) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM productos WHERE categoria = $1`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// GetAvailable lists products with stock on hand.
func (r *Repo) GetAvailable(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM productos WHERE stock > 0 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *Repo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM productos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM productos`).Scan(&n)
	return n, err
}

// ReduceStock decrements stock only when enough is on hand. The conditional
// update collapses check-then-act into one statement, so concurrent orders
// against the same product can never drive stock negative.
func (r *Repo) ReduceStock(ctx context.Context, id int64, qty int) error {
	ct, err := r.DB.Exec(ctx, `UPDATE productos SET stock = stock - $2 WHERE id = $1 AND stock >= $2`, id, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 1 {
		return nil
	}
	var stock int
	err = r.DB.QueryRow(ctx, `SELECT stock FROM productos WHERE id = $1`, id).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrProductNotFound
	}
	if err != nil {
		return err
	}
	return &domain.InsufficientStockError{Available: stock}
}

// IncreaseStock unconditionally adds qty back (order cancellation).
func (r *Repo) IncreaseStock(ctx context.Context, id int64, qty int) error {
	ct, err := r.DB.Exec(ctx, `UPDATE productos SET stock = stock + $2 WHERE id = $1`, id, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
