package httpx

import (
	"context"

	"github.com/marce316/go-pedidos/internal/domain"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SearchByName(ctx context.Context, fragment string) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type ProductStore interface {
	Create(ctx context.Context, p *domain.Product) error
	List(ctx context.Context) ([]domain.Product, error)
	SearchByName(ctx context.Context, fragment string) ([]domain.Product, error)
	GetByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetAvailable(ctx context.Context) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
}
