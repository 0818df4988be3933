package http

import "github.com/go-chi/chi/v5"

// Mount registers the admin endpoints under /api/admin.
func (h *AdminHandler) Mount(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/requests", h.HandleListRequests)
		r.Post("/requests/{id}/status", h.HandleRequestStatus)
		r.Get("/transactions", h.HandleListTransactions)
		r.Post("/transactions/{id}/status", h.HandleTransactionStatus)
		r.Get("/users", h.HandleListUsers)
		r.Get("/users/{id}", h.HandleGetUser)
		r.Get("/users/{id}/activity", h.HandleUserActivity)
		r.Get("/backlog", h.HandleBacklog)
	})
}
