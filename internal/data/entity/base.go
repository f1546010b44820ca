package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// Address is embedded by users (saved address) and orders (ship-to snapshot).
type Address struct {
	Line1      string `db:"ship_line1" json:"line1"`
	City       string `db:"ship_city" json:"city"`
	State      string `db:"ship_state" json:"state"`
	PostalCode string `db:"ship_postal" json:"postal_code"`
	Country    string `db:"ship_country" json:"country"`
	Phone      string `db:"ship_phone" json:"phone"`
}
