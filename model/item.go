package model

// Item is a thing an owner offers for sharing. Available is a pointer so a
// missing field in a create/patch payload is distinguishable from false.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	OwnerID     int64  `json:"-"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// BookingSummary is the short booking view embedded in an owner's item detail.
type BookingSummary struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemDetail is an item enriched for the detail/listing views. Booking
// summaries are filled only for the item's owner.
type ItemDetail struct {
	Item
	LastBooking *BookingSummary `json:"lastBooking,omitempty"`
	NextBooking *BookingSummary `json:"nextBooking,omitempty"`
	Comments    []Comment       `json:"comments"`
}
