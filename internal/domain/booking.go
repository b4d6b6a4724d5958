package domain

import "time"

type Booking struct {
	ID        string
	HotelID   string
	UserID    string
	StartDate time.Time // calendar date, UTC midnight
	EndDate   time.Time // inclusive; EndDate >= StartDate
	NbPerson  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingUpdate carries a partial update; nil fields keep their prior value.
type BookingUpdate struct {
	StartDate *time.Time
	EndDate   *time.Time
	NbPerson  *int
}

// Read model: a booking joined with its hotel and user summaries.
type BookingView struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	NbPerson  int
	CreatedAt time.Time
	UpdatedAt time.Time
	Hotel     HotelSummary
	User      UserSummary
}

type HotelSummary struct {
	ID       string
	Name     string
	Location string
}

// UserSummary never carries the password hash.
type UserSummary struct {
	ID     string
	Pseudo string
	Email  string
}

// BookingsQuery drives the admin listing. Filters are AND-combined.
type BookingsQuery struct {
	Limit     int // default 10
	Page      int // zero-indexed
	MinDate   *time.Time
	UserName  *string // exact pseudo
	UserEmail *string // exact, trimmed and lowercased by the service
	HotelName *string // case-insensitive substring
}

// Overlaps reports whether the closed intervals [aStart,aEnd] and
// [bStart,bEnd] share at least one calendar day. Boundaries are inclusive:
// a stay ending on day D collides with one starting on day D.
// Inverted intervals are rejected upstream.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// DateOnly truncates t to UTC midnight so interval comparisons work on
// whole calendar days regardless of the wall-clock time parsed from input.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
