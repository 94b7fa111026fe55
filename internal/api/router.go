package api

import (
	"net/http"

	"comanda-be/internal/auth"
	"comanda-be/internal/middleware"
)

// Router wires the endpoints. Everything except login requires an
// operator token.
func Router(h *Handler, tokens *auth.Service) http.Handler {
	requireAuth := middleware.RequireAuth(tokens)
	protect := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(handler)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", h.Login)

	mux.Handle("GET /menu", protect(h.Menu))
	mux.Handle("GET /tables", protect(h.ListTables))
	mux.Handle("GET /tables/{id}/order", protect(h.GetOrder))
	mux.Handle("POST /tables/{id}/order", protect(h.CreateOrder))
	mux.Handle("GET /tables/{id}/order/watch", protect(h.WatchOrder))
	mux.Handle("POST /tables/{id}/items", protect(h.AddItem))
	mux.Handle("PATCH /tables/{id}/items/{itemId}", protect(h.UpdateQuantity))
	mux.Handle("DELETE /tables/{id}/items/{itemId}", protect(h.RemoveItem))
	mux.Handle("POST /tables/{id}/close", protect(h.CloseOrder))
	mux.Handle("POST /tables/{id}/print", protect(h.PrintOrder))
	mux.Handle("GET /history", protect(h.History))

	return middleware.RateLimitMiddleware(mux)
}
