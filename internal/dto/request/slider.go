package request

type SliderRequest struct {
	Image        string  `json:"image" validate:"required,url"`
	ProductID    *string `json:"product_id,omitempty" validate:"omitempty,uuid"`
	Title        string  `json:"title" validate:"max=200"`
	Subtitle     string  `json:"subtitle" validate:"max=200"`
	DisplayOrder *int    `json:"display_order,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type SliderUpdateRequest struct {
	Image        *string `json:"image,omitempty" validate:"omitempty,url"`
	ProductID    *string `json:"product_id,omitempty" validate:"omitempty,uuid"`
	Title        *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Subtitle     *string `json:"subtitle,omitempty" validate:"omitempty,max=200"`
	DisplayOrder *int    `json:"display_order,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
