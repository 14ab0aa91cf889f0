package httpx

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marce316/go-pedidos/internal/domain"
	"github.com/marce316/go-pedidos/internal/orders"
)

type PedidosHandler struct {
	Service  *orders.Service
	Users    UserStore
	Products ProductStore
	Cache    CountsCache // optional
	Log      *slog.Logger
}

func (h *PedidosHandler) Register(r *chi.Mux) {
	r.Get("/pedidos", h.index)
	r.Post("/pedidos/nuevo", h.create)
	r.Get("/pedidos/usuario", h.byUser)
	r.Post("/pedidos/actualizar-estado", h.updateStatus)
	r.Post("/pedidos/cancelar", h.cancel)
	r.Get("/api/pedidos", h.apiList)
}

type pedidosPage struct {
	Flash    *Flash
	Pedidos  []domain.OrderDetail
	Users    []domain.User
	Products []domain.Product
	Statuses []domain.Status
}

type pedidosUsuarioPage struct {
	Flash   *Flash
	User    *domain.User
	Pedidos []domain.Order
}

func (h *PedidosHandler) index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	details, err := h.Service.OrdersWithDetails(ctx)
	if err != nil {
		h.Log.Error("list orders with details", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("list users for order form", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	available, err := h.Products.GetAvailable(ctx)
	if err != nil {
		h.Log.Error("list available products", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, h.Log, "pedidos.html", pedidosPage{
		Flash:    popFlash(w, r),
		Pedidos:  details,
		Users:    users,
		Products: available,
		Statuses: domain.ValidStatuses,
	})
}

func (h *PedidosHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "error", "invalid form data")
		http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
		return
	}

	userID, uerr := parseID(r.PostFormValue("usuario_id"))
	productID, perr := parseID(r.PostFormValue("producto_id"))
	qty, qerr := parseQty(r.PostFormValue("cantidad"))
	if uerr != nil || perr != nil || qerr != nil {
		setFlash(w, "error", "invalid form data")
		http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
		return
	}

	order, err := h.Service.CreateOrder(r.Context(), userID, productID, qty)
	if err != nil {
		setFlash(w, "error", err.Error())
	} else {
		h.Log.Info("order created", "pedido_id", order.ID, "usuario_id", userID, "producto_id", productID, "cantidad", qty)
		invalidateCounts(r.Context(), h.Cache, h.Log)
		setFlash(w, "success", "order created successfully")
	}
	http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
}

func (h *PedidosHandler) byUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r.URL.Query().Get("usuario_id"))
	if err != nil {
		setFlash(w, "error", "invalid user id")
		http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
		return
	}

	ctx := r.Context()
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.Log.Error("get user", "usuario_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pedidos, err := h.Service.OrdersByUser(ctx, userID)
	if err != nil {
		h.Log.Error("list orders by user", "usuario_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, h.Log, "pedidos_usuario.html", pedidosUsuarioPage{Flash: popFlash(w, r), User: user, Pedidos: pedidos})
}

func (h *PedidosHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "error", "invalid form data")
		http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
		return
	}

	orderID, err := parseID(r.PostFormValue("pedido_id"))
	if err != nil {
		setFlash(w, "error", "invalid form data")
		http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), orderID, r.PostFormValue("estado")); err != nil {
		setFlash(w, "error", err.Error())
	} else {
		setFlash(w, "success", "order status updated")
	}
	http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
}

func (h *PedidosHandler) cancel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "error", "invalid form data")
		http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
		return
	}

	orderID, err := parseID(r.PostFormValue("pedido_id"))
	if err != nil {
		setFlash(w, "error", "invalid form data")
		http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
		return
	}

	if err := h.Service.CancelOrder(r.Context(), orderID); err != nil {
		setFlash(w, "error", err.Error())
	} else {
		h.Log.Info("order cancelled", "pedido_id", orderID)
		setFlash(w, "success", "order cancelled successfully")
	}
	http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
}

func (h *PedidosHandler) apiList(w http.ResponseWriter, r *http.Request) {
	pedidos, err := h.Service.Orders(r.Context())
	if err != nil {
		h.Log.Error("api list orders", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toPedidoDTOs(pedidos))
}

// Empty form fields parse to zero so the workflow can report them as
// missing; only malformed input is rejected at the handler.
func parseID(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func parseQty(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
