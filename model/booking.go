package model

import "time"

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// StateFilter partitions bookings for the listing endpoints. Values are
// case-sensitive; anything else is an unknown state, not a validation error.
type StateFilter string

const (
	StateAll      StateFilter = "ALL"
	StateCurrent  StateFilter = "CURRENT"
	StatePast     StateFilter = "PAST"
	StateFuture   StateFilter = "FUTURE"
	StateWaiting  StateFilter = "WAITING"
	StateRejected StateFilter = "REJECTED"
)

func ParseStateFilter(s string) (StateFilter, bool) {
	switch StateFilter(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return StateFilter(s), true
	}
	return "", false
}

type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	ItemID   int64         `json:"itemId"`
	ItemName string        `json:"itemName,omitempty"`
	BookerID int64         `json:"bookerId"`
	Status   BookingStatus `json:"status"`
}
