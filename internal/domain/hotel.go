package domain

import "time"

type Hotel struct {
	ID          string
	Name        string // unique, exact case-sensitive match for duplicates
	Location    string
	Description string
	Pictures    []string // stored image paths, ordered
}

type HotelUpdate struct {
	Name        *string
	Location    *string
	Description *string
}

// HotelsQuery drives the availability-filtered hotel listing.
// Start/End bound the requested stay; when both are set, hotels with any
// overlapping booking are excluded from the page.
type HotelsQuery struct {
	Limit    int
	Page     int // zero-indexed; offset = Limit*Page
	Location *string
	Start    *time.Time
	End      *time.Time
}
