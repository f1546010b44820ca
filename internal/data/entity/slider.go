package entity

import "github.com/google/uuid"

// MaxSliders caps the number of persisted hero slides.
const MaxSliders = 3

type Slider struct {
	Base
	Image        string     `db:"image"`
	ProductID    *uuid.UUID `db:"product_id"`
	Title        string     `db:"title"`
	Subtitle     string     `db:"subtitle"`
	DisplayOrder int        `db:"display_order"`
	IsActive     bool       `db:"is_active"`
}
