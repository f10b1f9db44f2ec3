// model/rental.go
package model

import "time"

type RentalStatus string

const (
	RentalOpen   RentalStatus = "OPEN"
	RentalClosed RentalStatus = "CLOSED"
)

type Rental struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	VideoID    int64     `json:"video_id"`
	DueDate    time.Time `json:"due_date"`
	CheckedIn  bool      `json:"checked_in"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r Rental) Status() RentalStatus {
	if r.CheckedIn {
		return RentalClosed
	}
	return RentalOpen
}

// RentalReq is the check-out / check-in payload keyed by customer and video.
// swagger:model RentalReq
type RentalReq struct {
	CustomerID *int64 `json:"customer_id" validate:"required,gt=0"`
	VideoID    *int64 `json:"video_id" validate:"required,gt=0"`
}

// RentalSummary is returned by check-out and check-in.
type RentalSummary struct {
	Rental
	VideosCheckedOutCount int64 `json:"videos_checked_out_count"`
	AvailableInventory    int64 `json:"available_inventory"`
}
