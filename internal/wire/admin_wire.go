package wire

import (
	"kickstreet/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAdmin mounts every /api/admin route behind authentication and the admin role.
func wireAdmin(r chi.Router, h *adaptor.Handler, g guards) {
	r.With(g.auth, g.admin).Route("/admin", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Post("/", h.Product.Create)
			r.Get("/{id}", h.Product.GetByID)
			r.Put("/{id}", h.Product.Update)
			r.Delete("/{id}", h.Product.Delete)
		})

		r.Route("/sliders", func(r chi.Router) {
			r.Get("/", h.Slider.List)
			r.Post("/", h.Slider.Create)
			r.Post("/quick-add", h.Slider.QuickAdd)
			r.Get("/{id}", h.Slider.GetByID)
			r.Put("/{id}", h.Slider.Update)
			r.Delete("/{id}", h.Slider.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Order.List)
			r.Put("/", h.Order.UpdateFromBody)
			r.Put("/{id}", h.Order.Update)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.User.GetAllUsers)
			r.Delete("/{id}", h.User.DeleteUser)
		})

		r.Get("/stats", h.Stats.GetStats)
		r.Post("/upload", h.Product.Upload)
	})
}
