package model

import "time"

// ItemRequest is a solicitation for an item not yet listed. Views carry the
// items created in answer to it; Items is always a slice, never null.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	AuthorID    int64     `json:"-"`
	Created     time.Time `json:"created"`
	Items       []Item    `json:"items"`
}
