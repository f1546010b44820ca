package request

import "github.com/shopspring/decimal"

type ProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"required,oneof=Men Women Children"`
	Brand       string          `json:"brand,omitempty" validate:"max=100"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Images      []string        `json:"images" validate:"required,min=1,dive,url"`
}

type ProductUpdateRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,oneof=Men Women Children"`
	Brand       *string          `json:"brand,omitempty" validate:"omitempty,max=100"`
	Sizes       []string         `json:"sizes,omitempty"`
	Colors      []string         `json:"colors,omitempty"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Images      []string         `json:"images,omitempty" validate:"omitempty,min=1,dive,url"`
}

type UploadRequest struct {
	File   string `json:"file" validate:"required"`
	Folder string `json:"folder,omitempty" validate:"max=100"`
}
