// model/video.go
package model

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day rendered as YYYY-MM-DD.
type Date struct{ time.Time }

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	p, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = p
	return nil
}

type Video struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	ReleaseDate    Date   `json:"release_date"`
	TotalInventory int64  `json:"total_inventory"`
}

// VideoReq represents the video create/update payload
// swagger:model VideoReq
type VideoReq struct {
	Title          *string `json:"title" validate:"required"`
	ReleaseDate    *string `json:"release_date" validate:"required,datetime=2006-01-02"`
	TotalInventory *int64  `json:"total_inventory" validate:"required,gte=0"`
}

// RentedVideo is a video a customer currently has checked out.
type RentedVideo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ReleaseDate Date      `json:"release_date"`
	DueDate     time.Time `json:"due_date"`
}
