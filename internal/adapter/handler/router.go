package handler

import (
	"net/http"

	"github.com/qvo1811/restaurant-backend/internal/core/access"
	"github.com/qvo1811/restaurant-backend/internal/core/notify"
	"github.com/qvo1811/restaurant-backend/internal/core/service"
	"github.com/qvo1811/restaurant-backend/internal/port"
)

// RouterDeps carries everything the HTTP boundary needs.
type RouterDeps struct {
	Auth    *service.AuthService
	Catalog *service.CatalogService
	Orders  *service.OrderService
	Tokens  port.TokenService
	Images  port.ImageStore
	Hub     *notify.Hub
	// ImageDir, when set, is served under /images/.
	ImageDir string
}

// NewRouter assembles the API surface with its middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	auth := NewAuthHandler(deps.Auth)
	products := NewProductHandler(deps.Catalog, deps.Images)
	orders := NewOrderHandler(deps.Orders)
	events := NewEventsHandler(deps.Hub)

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return authenticate(deps.Tokens, next)
	}
	admin := func(op access.Operation, next http.HandlerFunc) http.HandlerFunc {
		return authed(require(op, next))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/auth/register", auth.Register)
	mux.HandleFunc("POST /api/auth/login", auth.Login)

	mux.HandleFunc("GET /api/users", admin(access.OpManageUsers, auth.ListUsers))
	mux.HandleFunc("PUT /api/users/{id}", admin(access.OpManageUsers, auth.UpdateUser))
	mux.HandleFunc("DELETE /api/users/{id}", admin(access.OpManageUsers, auth.DeleteUser))
	mux.HandleFunc("POST /api/users/{id}/promote", admin(access.OpManageUsers, auth.PromoteUser))

	mux.HandleFunc("GET /api/products", maybeAuthenticate(deps.Tokens, products.List))
	mux.HandleFunc("GET /api/products/{id}", products.Get)
	mux.HandleFunc("POST /api/products", admin(access.OpManageCatalog, products.Create))
	mux.HandleFunc("PUT /api/products/{id}", admin(access.OpManageCatalog, products.Update))
	mux.HandleFunc("DELETE /api/products/{id}", admin(access.OpManageCatalog, products.Delete))
	mux.HandleFunc("POST /api/products/{id}/image", admin(access.OpManageCatalog, products.UploadImage))

	mux.HandleFunc("GET /api/orders", authed(orders.List))
	mux.HandleFunc("POST /api/orders", authed(orders.Create))
	mux.HandleFunc("GET /api/orders/{id}", authed(orders.Get))
	mux.HandleFunc("PUT /api/orders/{id}/status", admin(access.OpUpdateOrderStatus, orders.UpdateStatus))
	mux.HandleFunc("DELETE /api/orders/{id}", authed(orders.Cancel))

	mux.HandleFunc("GET /api/events", authed(events.Stream))

	if deps.ImageDir != "" {
		mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(deps.ImageDir))))
	}

	return requestID(mux)
}
