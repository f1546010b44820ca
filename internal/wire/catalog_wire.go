package wire

import (
	"kickstreet/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, products *adaptor.ProductHandler, sliders *adaptor.SliderHandler) {
	r.Get("/products", products.List)
	r.Get("/products/{id}", products.GetByID)
	r.Get("/products/slug/{slug}", products.GetBySlug)
	r.Get("/sliders", sliders.Active)
}
