package request

import "kickstreet/internal/data/entity"

type AddressRequest struct {
	Line1      string `json:"line1" validate:"max=200"`
	City       string `json:"city" validate:"max=100"`
	State      string `json:"state" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
	Country    string `json:"country" validate:"omitempty,len=2"`
	Phone      string `json:"phone" validate:"max=15"`
}

// ToEntity copies the address, defaulting the country to defaultCountry when blank.
func (a *AddressRequest) ToEntity(defaultCountry string) entity.Address {
	if a == nil {
		return entity.Address{Country: defaultCountry}
	}
	country := a.Country
	if country == "" {
		country = defaultCountry
	}
	return entity.Address{
		Line1:      a.Line1,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    country,
		Phone:      a.Phone,
	}
}

type UpdateProfileRequest struct {
	Name            *string         `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone           *string         `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	ShippingAddress *AddressRequest `json:"shipping_address,omitempty"`
}
