// model/customer.go
package model

import "time"

type Customer struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	PostalCode string    `json:"postal_code"`
	RegisterAt time.Time `json:"register_at"`
}

// CustomerReq represents the customer create/update payload
// swagger:model CustomerReq
type CustomerReq struct {
	Name       *string `json:"name" validate:"required"`
	Phone      *string `json:"phone" validate:"required"`
	PostalCode *string `json:"postal_code" validate:"required"`
}

// Renter is a customer currently holding a copy of a video.
type Renter struct {
	DueDate    time.Time `json:"due_date"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	PostalCode string    `json:"postal_code"`
}
