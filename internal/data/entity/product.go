package entity

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryMen      Category = "Men"
	CategoryWomen    Category = "Women"
	CategoryChildren Category = "Children"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryChildren:
		return true
	}
	return false
}

const DefaultBrand = "KickStreet"

type Product struct {
	Base
	Name        string          `db:"name"`
	Slug        string          `db:"slug"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Category    Category        `db:"category"`
	Brand       string          `db:"brand"`
	Sizes       []string        `db:"sizes"`
	Colors      []string        `db:"colors"`
	Stock       int             `db:"stock"`
	Images      []string        `db:"images"`
	Ratings     decimal.Decimal `db:"ratings"`
	NumReviews  int             `db:"num_reviews"`
}

// CoverImage is the first image or empty.
func (p *Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
