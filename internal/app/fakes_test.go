package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"hotelbook/internal/domain"
)

// ---- in-memory fakes implementing the domain ports ----

type fakeHotels struct {
	m         map[string]domain.Hotel
	lastQuery domain.HotelsQuery
}

func newFakeHotels(hs ...domain.Hotel) *fakeHotels {
	f := &fakeHotels{m: map[string]domain.Hotel{}}
	for _, h := range hs {
		f.m[h.ID] = h
	}
	return f
}

func (f *fakeHotels) Create(ctx context.Context, h domain.Hotel) error {
	f.m[h.ID] = h
	return nil
}

func (f *fakeHotels) GetByID(ctx context.Context, id string) (domain.Hotel, error) {
	h, ok := f.m[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeHotels) GetByName(ctx context.Context, name string) (domain.Hotel, error) {
	for _, h := range f.m {
		if h.Name == name {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (f *fakeHotels) Update(ctx context.Context, h domain.Hotel) error {
	if _, ok := f.m[h.ID]; !ok {
		return domain.ErrNotFound
	}
	f.m[h.ID] = h
	return nil
}

func (f *fakeHotels) Delete(ctx context.Context, id string) error {
	if _, ok := f.m[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.m, id)
	return nil
}

func (f *fakeHotels) List(ctx context.Context, q domain.HotelsQuery) ([]domain.Hotel, error) {
	f.lastQuery = q
	var out []domain.Hotel
	for _, h := range f.m {
		if q.Location != nil && h.Location != *q.Location {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeBookings struct {
	hotels    *fakeHotels
	items     []domain.Booking
	seq       int
	lastQuery domain.BookingsQuery
}

func (f *fakeBookings) view(b domain.Booking) domain.BookingView {
	v := domain.BookingView{
		ID: b.ID, StartDate: b.StartDate, EndDate: b.EndDate, NbPerson: b.NbPerson,
		CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
		Hotel: domain.HotelSummary{ID: b.HotelID},
		User:  domain.UserSummary{ID: b.UserID},
	}
	if h, ok := f.hotels.m[b.HotelID]; ok {
		v.Hotel.Name, v.Hotel.Location = h.Name, h.Location
	}
	return v
}

func (f *fakeBookings) overlapping(hotelID string, start, end time.Time, excludeID string) bool {
	for _, b := range f.items {
		if b.HotelID != hotelID || b.ID == excludeID {
			continue
		}
		if domain.Overlaps(b.StartDate, b.EndDate, start, end) {
			return true
		}
	}
	return false
}

func (f *fakeBookings) Create(ctx context.Context, b domain.Booking) (domain.BookingView, error) {
	if _, ok := f.hotels.m[b.HotelID]; !ok {
		return domain.BookingView{}, domain.ErrNotFound
	}
	if f.overlapping(b.HotelID, b.StartDate, b.EndDate, "") {
		return domain.BookingView{}, fmt.Errorf("%w: dates overlap an existing booking", domain.ErrConflict)
	}
	f.seq++
	b.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Second)
	b.UpdatedAt = b.CreatedAt
	f.items = append(f.items, b)
	return f.view(b), nil
}

func (f *fakeBookings) Update(ctx context.Context, b domain.Booking) (domain.BookingView, error) {
	for i, cur := range f.items {
		if cur.ID != b.ID {
			continue
		}
		if f.overlapping(b.HotelID, b.StartDate, b.EndDate, b.ID) {
			return domain.BookingView{}, fmt.Errorf("%w: dates overlap an existing booking", domain.ErrConflict)
		}
		cur.StartDate, cur.EndDate, cur.NbPerson = b.StartDate, b.EndDate, b.NbPerson
		cur.UpdatedAt = cur.UpdatedAt.Add(time.Second)
		f.items[i] = cur
		return f.view(cur), nil
	}
	return domain.BookingView{}, domain.ErrNotFound
}

func (f *fakeBookings) Delete(ctx context.Context, id string) error {
	for i, b := range f.items {
		if b.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBookings) GetByID(ctx context.Context, id string) (domain.BookingView, error) {
	for _, b := range f.items {
		if b.ID == id {
			return f.view(b), nil
		}
	}
	return domain.BookingView{}, domain.ErrNotFound
}

func (f *fakeBookings) ListByUser(ctx context.Context, userID string) ([]domain.BookingView, error) {
	var out []domain.BookingView
	for _, b := range f.items {
		if b.UserID == userID {
			out = append(out, f.view(b))
		}
	}
	return out, nil
}

func (f *fakeBookings) List(ctx context.Context, q domain.BookingsQuery) ([]domain.BookingView, error) {
	f.lastQuery = q
	var out []domain.BookingView
	for _, b := range f.items {
		if q.MinDate != nil && b.StartDate.Before(*q.MinDate) {
			continue
		}
		if q.HotelName != nil {
			h := f.hotels.m[b.HotelID]
			if !strings.Contains(strings.ToLower(h.Name), strings.ToLower(*q.HotelName)) {
				continue
			}
		}
		out = append(out, f.view(b))
	}
	return out, nil
}

func (f *fakeBookings) HasOverlap(ctx context.Context, hotelID string, start, end time.Time, excludeID string) (bool, error) {
	return f.overlapping(hotelID, start, end, excludeID), nil
}

type fakeCache struct {
	store map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

type fakeFiles struct {
	m map[string][]string // hotelID -> served paths
}

func (f *fakeFiles) Save(hotelID, filename string, r io.Reader) (string, error) {
	p := "/public/" + hotelID + "/" + filename
	if f.m == nil {
		f.m = map[string][]string{}
	}
	f.m[hotelID] = append(f.m[hotelID], p)
	return p, nil
}

func (f *fakeFiles) List(hotelID string) ([]string, error) { return f.m[hotelID], nil }

func (f *fakeFiles) Delete(hotelID, fileID string) error {
	ps := f.m[hotelID]
	for i, p := range ps {
		if strings.HasSuffix(p, fileID) {
			f.m[hotelID] = append(ps[:i], ps[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeFiles) DeleteAll(hotelID string) error {
	delete(f.m, hotelID)
	return nil
}
