package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marce316/go-pedidos/internal/domain"
)

type Repo struct{ DB *pgxpool.Pool }

const userCols = `id, nombre, email, COALESCE(telefono, ''), fecha_registro`

// Create persists a validated user. The email must already be normalized
// (domain.NewUser lowercases it); uniqueness is enforced both by the
// pre-check and by the unique index on lower(email).
func (r *Repo) Create(ctx context.Context, u *domain.User) error {
	existing, err := r.GetByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailTaken
	}

	err = r.DB.QueryRow(ctx, `
		INSERT INTO usuarios (nombre, email, telefono)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, fecha_registro
	`, u.Name, u.Email, u.Phone).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM usuarios WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail is a case-insensitive exact match.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM usuarios WHERE lower(email) = lower($1)`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SearchByName is a case-insensitive substring match.
func (r *Repo) SearchByName(ctx context.Context, fragment string) ([]domain.User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userCols+` FROM usuarios WHERE nombre ILIKE '%' || $1 || '%'`, fragment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userCols+` FROM usuarios ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&n)
	return n, err
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
