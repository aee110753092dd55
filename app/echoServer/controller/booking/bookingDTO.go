package booking

import "time"

type CreateBookingReq struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}
