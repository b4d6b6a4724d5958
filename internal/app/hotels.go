package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"hotelbook/internal/domain"
)

// defaultSpanDays completes a half-open availability query: a caller may
// give only one bound and gets a 3-day window around it. Policy choice,
// not a computed value.
const defaultSpanDays = 3

type HotelService struct {
	hotels   domain.HotelRepository
	files    domain.FileStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelService(h domain.HotelRepository, f domain.FileStore, c domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{hotels: h, files: f, cache: c, cacheTTL: ttl}
}

// List returns a page of hotels, excluding the ones with a booking
// overlapping the requested range. Availability pages are never cached:
// they would go stale on every booking write.
func (s *HotelService) List(ctx context.Context, q domain.HotelsQuery) ([]domain.Hotel, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", domain.ErrValidation)
	}
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Start != nil && q.End != nil && q.Start.After(*q.End) {
		return nil, fmt.Errorf("%w: start date after end date", domain.ErrValidation)
	}

	// One bound given: derive the other with the fixed default span.
	if q.Start != nil && q.End == nil {
		e := domain.DateOnly(*q.Start).AddDate(0, 0, defaultSpanDays)
		q.End = &e
	}
	if q.Start == nil && q.End != nil {
		st := domain.DateOnly(*q.End).AddDate(0, 0, -defaultSpanDays)
		q.Start = &st
	}
	if q.Start != nil {
		st := domain.DateOnly(*q.Start)
		e := domain.DateOnly(*q.End)
		q.Start, q.End = &st, &e
	}

	hotels, err := s.hotels.List(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range hotels {
		s.attachPictures(&hotels[i])
	}
	return hotels, nil
}

func (s *HotelService) Get(ctx context.Context, id string) (domain.Hotel, error) {
	key := "hotel:" + id
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.attachPictures(&h)
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

func (s *HotelService) Create(ctx context.Context, caller domain.Identity, h domain.Hotel) (domain.Hotel, error) {
	if !CanManageHotels(caller) {
		return domain.Hotel{}, domain.ErrForbidden
	}
	if h.Name == "" {
		return domain.Hotel{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := s.ensureNameFree(ctx, h.Name, ""); err != nil {
		return domain.Hotel{}, err
	}
	h.ID = uuid.NewString()
	if err := s.hotels.Create(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

func (s *HotelService) Update(ctx context.Context, caller domain.Identity, id string, upd domain.HotelUpdate) (domain.Hotel, error) {
	if !CanManageHotels(caller) {
		return domain.Hotel{}, domain.ErrForbidden
	}
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if upd.Name != nil && *upd.Name != h.Name {
		if err := s.ensureNameFree(ctx, *upd.Name, id); err != nil {
			return domain.Hotel{}, err
		}
		h.Name = *upd.Name
	}
	if upd.Location != nil {
		h.Location = *upd.Location
	}
	if upd.Description != nil {
		h.Description = *upd.Description
	}
	if err := s.hotels.Update(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Del(ctx, "hotel:"+id)
	s.attachPictures(&h)
	return h, nil
}

// Delete removes the hotel and its stored images. Historical bookings
// are kept.
func (s *HotelService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if !CanManageHotels(caller) {
		return domain.ErrForbidden
	}
	if _, err := s.hotels.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.hotels.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.files.DeleteAll(id)
	_ = s.cache.Del(ctx, "hotel:"+id)
	return nil
}

type Upload struct {
	Filename string
	Content  io.Reader
}

// UploadImages stores images for an existing hotel and returns their paths.
func (s *HotelService) UploadImages(ctx context.Context, caller domain.Identity, hotelID string, uploads []Upload) ([]string, error) {
	if !CanManageHotels(caller) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.hotels.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(uploads))
	for _, u := range uploads {
		p, err := s.files.Save(hotelID, u.Filename, u.Content)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	_ = s.cache.Del(ctx, "hotel:"+hotelID)
	return paths, nil
}

func (s *HotelService) DeleteImage(ctx context.Context, caller domain.Identity, hotelID, fileID string) error {
	if !CanManageHotels(caller) {
		return domain.ErrForbidden
	}
	if err := s.files.Delete(hotelID, fileID); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, "hotel:"+hotelID)
	return nil
}

func (s *HotelService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.hotels.GetByName(ctx, name)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return fmt.Errorf("%w: a hotel with this name already exists", domain.ErrConflict)
		}
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *HotelService) attachPictures(h *domain.Hotel) {
	if s.files == nil {
		return
	}
	if ps, err := s.files.List(h.ID); err == nil {
		h.Pictures = ps
	}
}
