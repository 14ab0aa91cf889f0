package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marce316/go-pedidos/internal/domain"
)

type ProductsHandler struct {
	Store ProductStore
	Cache CountsCache // optional
	Log   *slog.Logger
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/productos", h.index)
	r.Post("/productos/nuevo", h.create)
	r.Get("/productos/buscar", h.search)
	r.Get("/productos/categoria", h.byCategory)
	r.Get("/api/productos", h.apiList)
}

type productosPage struct {
	Flash     *Flash
	Products  []domain.Product
	Query     string
	Categoria string
}

func (h *ProductsHandler) index(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.List(r.Context())
	if err != nil {
		h.Log.Error("list products", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, h.Log, "productos.html", productosPage{Flash: popFlash(w, r), Products: products})
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "error", "invalid form data")
		http.Redirect(w, r, "/productos", http.StatusSeeOther)
		return
	}

	product, err := domain.NewProduct(
		r.PostFormValue("nombre"),
		r.PostFormValue("precio"),
		r.PostFormValue("descripcion"),
		r.PostFormValue("stock"),
		r.PostFormValue("categoria"),
	)
	if err != nil {
		setFlash(w, "error", err.Error())
		http.Redirect(w, r, "/productos", http.StatusSeeOther)
		return
	}

	if err := h.Store.Create(r.Context(), product); err != nil {
		h.Log.Error("create product", "error", err)
		setFlash(w, "error", err.Error())
	} else {
		h.Log.Info("product created", "producto_id", product.ID, "nombre", product.Name)
		invalidateCounts(r.Context(), h.Cache, h.Log)
		setFlash(w, "success", "product created successfully")
	}
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}

func (h *ProductsHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	products, err := h.Store.SearchByName(r.Context(), q)
	if err != nil {
		h.Log.Error("search products", "q", q, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, h.Log, "productos.html", productosPage{Flash: popFlash(w, r), Products: products, Query: q})
}

func (h *ProductsHandler) byCategory(w http.ResponseWriter, r *http.Request) {
	cat := r.URL.Query().Get("categoria")
	products, err := h.Store.GetByCategory(r.Context(), cat)
	if err != nil {
		h.Log.Error("products by category", "categoria", cat, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, h.Log, "productos.html", productosPage{Flash: popFlash(w, r), Products: products, Categoria: cat})
}

func (h *ProductsHandler) apiList(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.List(r.Context())
	if err != nil {
		h.Log.Error("api list products", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toProductoDTOs(products))
}
