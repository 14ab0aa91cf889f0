package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/marce316/go-pedidos/internal/orders"
	"github.com/marce316/go-pedidos/internal/redisx"
)

// CountsCache is the slice of the redis client the handlers use for the
// dashboard counts. *redis.Client satisfies it.
type CountsCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type DashboardHandler struct {
	Users    UserStore
	Products ProductStore
	Orders   *orders.Service
	Cache    CountsCache // optional
	Log      *slog.Logger
}

func (h *DashboardHandler) Register(r *chi.Mux) {
	r.Get("/", h.index)
}

type dashboardCounts struct {
	Usuarios  int64 `json:"usuarios"`
	Productos int64 `json:"productos"`
	Pedidos   int64 `json:"pedidos"`
}

type dashboardPage struct {
	Flash  *Flash
	Counts dashboardCounts
}

func (h *DashboardHandler) index(w http.ResponseWriter, r *http.Request) {
	counts, err := h.counts(r.Context())
	if err != nil {
		h.Log.Error("dashboard counts", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, h.Log, "index.html", dashboardPage{Flash: popFlash(w, r), Counts: counts})
}

// counts reads through the redis cache; cache failures fall back to the
// database and are not surfaced to the user.
func (h *DashboardHandler) counts(ctx context.Context) (dashboardCounts, error) {
	var counts dashboardCounts

	if h.Cache != nil {
		if s, err := h.Cache.Get(ctx, redisx.KeyDashboardCounts).Result(); err == nil {
			if err := json.Unmarshal([]byte(s), &counts); err == nil {
				return counts, nil
			}
		}
	}

	var err error
	if counts.Usuarios, err = h.Users.Count(ctx); err != nil {
		return counts, err
	}
	if counts.Productos, err = h.Products.Count(ctx); err != nil {
		return counts, err
	}
	if counts.Pedidos, err = h.Orders.Count(ctx); err != nil {
		return counts, err
	}

	if h.Cache != nil {
		if b, err := json.Marshal(counts); err == nil {
			_ = h.Cache.Set(ctx, redisx.KeyDashboardCounts, b, redisx.TTLDashboardCounts).Err()
		}
	}
	return counts, nil
}

// invalidateCounts drops the cached dashboard counts after an entity is
// created, so the dashboard does not serve stale numbers for the TTL.
func invalidateCounts(ctx context.Context, cache CountsCache, logger *slog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, redisx.KeyDashboardCounts).Err(); err != nil {
		logger.Warn("invalidate dashboard counts", "error", err)
	}
}
