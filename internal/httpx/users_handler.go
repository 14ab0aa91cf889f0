package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marce316/go-pedidos/internal/domain"
)

type UsersHandler struct {
	Store UserStore
	Cache CountsCache // optional
	Log   *slog.Logger
}

func (h *UsersHandler) Register(r *chi.Mux) {
	r.Get("/usuarios", h.index)
	r.Post("/usuarios/nuevo", h.create)
	r.Get("/usuarios/buscar", h.search)
	r.Get("/api/usuarios", h.apiList)
}

type usuariosPage struct {
	Flash *Flash
	Users []domain.User
	Query string
}

func (h *UsersHandler) index(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.List(r.Context())
	if err != nil {
		h.Log.Error("list users", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, h.Log, "usuarios.html", usuariosPage{Flash: popFlash(w, r), Users: users})
}

func (h *UsersHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "error", "invalid form data")
		http.Redirect(w, r, "/usuarios", http.StatusSeeOther)
		return
	}

	user, err := domain.NewUser(r.PostFormValue("nombre"), r.PostFormValue("email"), r.PostFormValue("telefono"))
	if err != nil {
		setFlash(w, "error", err.Error())
		http.Redirect(w, r, "/usuarios", http.StatusSeeOther)
		return
	}

	if err := h.Store.Create(r.Context(), user); err != nil {
		h.Log.Error("create user", "error", err)
		setFlash(w, "error", err.Error())
	} else {
		h.Log.Info("user created", "usuario_id", user.ID, "email", user.Email)
		invalidateCounts(r.Context(), h.Cache, h.Log)
		setFlash(w, "success", "user created successfully")
	}
	http.Redirect(w, r, "/usuarios", http.StatusSeeOther)
}

func (h *UsersHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	users, err := h.Store.SearchByName(r.Context(), q)
	if err != nil {
		h.Log.Error("search users", "q", q, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, h.Log, "usuarios.html", usuariosPage{Flash: popFlash(w, r), Users: users, Query: q})
}

func (h *UsersHandler) apiList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.List(r.Context())
	if err != nil {
		h.Log.Error("api list users", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toUsuarioDTOs(users))
}
