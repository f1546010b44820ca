package response

import "kickstreet/internal/data/entity"

// SliderResponse covers persisted slides and the ones synthesised from recent products.
// Synthesised slides carry ids of the form "auto-N" and Auto set.
type SliderResponse struct {
	ID           string  `json:"id"`
	Image        string  `json:"image"`
	ProductID    *string `json:"product_id,omitempty"`
	Title        string  `json:"title"`
	Subtitle     string  `json:"subtitle"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
	Auto         bool    `json:"auto"`
}

func SliderToResponse(s *entity.Slider) SliderResponse {
	resp := SliderResponse{
		ID:           s.ID.String(),
		Image:        s.Image,
		Title:        s.Title,
		Subtitle:     s.Subtitle,
		DisplayOrder: s.DisplayOrder,
		IsActive:     s.IsActive,
	}
	if s.ProductID != nil {
		id := s.ProductID.String()
		resp.ProductID = &id
	}
	return resp
}
