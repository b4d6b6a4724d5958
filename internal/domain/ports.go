package domain

import (
	"context"
	"io"
	"time"
)

type BookingRepository interface {
	// Create runs the overlap check and the insert in one serialized unit
	// per hotel (row lock on the hotel), so concurrent overlapping requests
	// admit at most one booking. Returns ErrNotFound when the hotel does
	// not exist and ErrConflict when the interval is taken.
	Create(ctx context.Context, b Booking) (BookingView, error)
	// Update re-runs the overlap check for the new interval, excluding the
	// booking's own id, under the same per-hotel serialization.
	Update(ctx context.Context, b Booking) (BookingView, error)
	Delete(ctx context.Context, id string) error

	GetByID(ctx context.Context, id string) (BookingView, error)
	ListByUser(ctx context.Context, userID string) ([]BookingView, error)
	List(ctx context.Context, q BookingsQuery) ([]BookingView, error)

	// HasOverlap is the existence-only overlap probe. excludeID may be
	// empty; when set, that booking is left out of the search.
	HasOverlap(ctx context.Context, hotelID string, start, end time.Time, excludeID string) (bool, error)
}

type HotelRepository interface {
	Create(ctx context.Context, h Hotel) error
	GetByID(ctx context.Context, id string) (Hotel, error)
	// GetByName matches exactly and case-sensitively (duplicate detection).
	GetByName(ctx context.Context, name string) (Hotel, error)
	Update(ctx context.Context, h Hotel) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q HotelsQuery) ([]Hotel, error)
}

type UserRepository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, page int) ([]User, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// FileStore keeps hotel images. Paths returned by Save are opaque and
// served by the HTTP layer as-is.
type FileStore interface {
	Save(hotelID, filename string, r io.Reader) (string, error)
	List(hotelID string) ([]string, error)
	Delete(hotelID, fileID string) error
	DeleteAll(hotelID string) error
}

// TokenManager issues and verifies bearer credentials.
type TokenManager interface {
	Issue(id Identity) (string, error)
	Verify(token string) (Identity, error)
}

// PasswordHasher is the opaque credential-digest collaborator.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(digest, plain string) bool
}
