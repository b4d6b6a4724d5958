package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotelbook/internal/domain"
)

type BookingService struct {
	bookings domain.BookingRepository
	hotels   domain.HotelRepository
	now      func() time.Time
}

func NewBookingService(b domain.BookingRepository, h domain.HotelRepository) *BookingService {
	return &BookingService{bookings: b, hotels: h, now: time.Now}
}

// WithClock overrides the time source; used by tests.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// validateInterval enforces start <= end and neither day in the past.
func (s *BookingService) validateInterval(start, end time.Time) error {
	today := domain.DateOnly(s.now())
	if start.After(end) {
		return fmt.Errorf("%w: start date after end date", domain.ErrValidation)
	}
	if start.Before(today) || end.Before(today) {
		return fmt.Errorf("%w: booking dates must not be in the past", domain.ErrValidation)
	}
	return nil
}

// Create books hotelID for [start,end]. The owner is always the caller,
// never an id supplied in the payload. Confirmation is immediate: a
// persisted booking is a confirmed booking.
func (s *BookingService) Create(ctx context.Context, caller domain.Identity, hotelID string, start, end time.Time, nbPerson int) (domain.BookingView, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if err := s.validateInterval(start, end); err != nil {
		return domain.BookingView{}, err
	}
	if nbPerson <= 0 {
		return domain.BookingView{}, fmt.Errorf("%w: nbPerson must be positive", domain.ErrValidation)
	}
	if _, err := s.hotels.GetByID(ctx, hotelID); err != nil {
		return domain.BookingView{}, err
	}
	b := domain.Booking{
		ID:        uuid.NewString(),
		HotelID:   hotelID,
		UserID:    caller.UserID,
		StartDate: start,
		EndDate:   end,
		NbPerson:  nbPerson,
	}
	// The repository serializes the overlap check and the insert per
	// hotel, so two concurrent overlapping requests admit at most one.
	return s.bookings.Create(ctx, b)
}

// Update applies a partial update to a booking. Only the owner or an
// Admin may mutate; supplied dates are re-validated and the overlap
// guard re-runs for the effective interval, excluding this booking.
func (s *BookingService) Update(ctx context.Context, caller domain.Identity, id string, upd domain.BookingUpdate) (domain.BookingView, error) {
	cur, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.BookingView{}, err
	}
	if !CanMutateBooking(caller, cur.User.ID) {
		return domain.BookingView{}, domain.ErrForbidden
	}

	b := domain.Booking{
		ID:        cur.ID,
		HotelID:   cur.Hotel.ID,
		UserID:    cur.User.ID,
		StartDate: cur.StartDate,
		EndDate:   cur.EndDate,
		NbPerson:  cur.NbPerson,
	}
	if upd.StartDate != nil {
		b.StartDate = domain.DateOnly(*upd.StartDate)
	}
	if upd.EndDate != nil {
		b.EndDate = domain.DateOnly(*upd.EndDate)
	}
	if upd.NbPerson != nil {
		if *upd.NbPerson <= 0 {
			return domain.BookingView{}, fmt.Errorf("%w: nbPerson must be positive", domain.ErrValidation)
		}
		b.NbPerson = *upd.NbPerson
	}
	if upd.StartDate != nil || upd.EndDate != nil {
		if err := s.validateInterval(b.StartDate, b.EndDate); err != nil {
			return domain.BookingView{}, err
		}
	}
	return s.bookings.Update(ctx, b)
}

func (s *BookingService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	cur, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutateBooking(caller, cur.User.ID) {
		return domain.ErrForbidden
	}
	return s.bookings.Delete(ctx, id)
}

// ListOwn returns the caller's bookings, hotel and user summaries joined.
func (s *BookingService) ListOwn(ctx context.Context, caller domain.Identity) ([]domain.BookingView, error) {
	return s.bookings.ListByUser(ctx, caller.UserID)
}

// ListAll is the admin search across every booking.
func (s *BookingService) ListAll(ctx context.Context, caller domain.Identity, q domain.BookingsQuery) ([]domain.BookingView, error) {
	if !CanListAllBookings(caller) {
		return nil, domain.ErrForbidden
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Page < 0 {
		q.Page = 0
	}
	if q.UserEmail != nil {
		e := strings.ToLower(strings.TrimSpace(*q.UserEmail))
		q.UserEmail = &e
	}
	if q.MinDate != nil {
		d := domain.DateOnly(*q.MinDate)
		q.MinDate = &d
	}
	return s.bookings.List(ctx, q)
}
