package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hotelbook/internal/adapters/observability"
	"hotelbook/internal/domain"
)

type bookingResponse struct {
	ID        string    `json:"id"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	NbPerson  int       `json:"nbPerson"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Hotel     struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"hotel"`
	User struct {
		ID     string `json:"id"`
		Pseudo string `json:"pseudo"`
		Email  string `json:"email"`
	} `json:"user"`
}

func toBookingResponse(v domain.BookingView) bookingResponse {
	var out bookingResponse
	out.ID = v.ID
	out.StartDate = v.StartDate.Format(dateLayout)
	out.EndDate = v.EndDate.Format(dateLayout)
	out.NbPerson = v.NbPerson
	out.CreatedAt = v.CreatedAt
	out.UpdatedAt = v.UpdatedAt
	out.Hotel.ID, out.Hotel.Name, out.Hotel.Location = v.Hotel.ID, v.Hotel.Name, v.Hotel.Location
	out.User.ID, out.User.Pseudo, out.User.Email = v.User.ID, v.User.Pseudo, v.User.Email
	return out
}

func toBookingResponses(vs []domain.BookingView) []bookingResponse {
	out := make([]bookingResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, toBookingResponse(v))
	}
	return out
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	var req struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		NbPerson  int    `json:"nbPerson"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed body")
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "startDate must be YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "endDate must be YYYY-MM-DD")
		return
	}

	v, err := h.Bookings.Create(r.Context(), caller, chi.URLParam(r, "hotelId"), start, end, req.NbPerson)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			observability.ObserveBookingConflict()
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(v))
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	var req struct {
		StartDate *string `json:"startDate,omitempty"`
		EndDate   *string `json:"endDate,omitempty"`
		NbPerson  *int    `json:"nbPerson,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed body")
		return
	}
	var upd domain.BookingUpdate
	if req.StartDate != nil {
		t, err := parseDate(*req.StartDate)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "startDate must be YYYY-MM-DD")
			return
		}
		upd.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := parseDate(*req.EndDate)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "endDate must be YYYY-MM-DD")
			return
		}
		upd.EndDate = &t
	}
	upd.NbPerson = req.NbPerson

	v, err := h.Bookings.Update(r.Context(), caller, chi.URLParam(r, "id"), upd)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			observability.ObserveBookingConflict()
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(v))
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	if err := h.Bookings.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "booking deleted"})
}

func (h *Handlers) listOwnBookings(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	vs, err := h.Bookings.ListOwn(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(vs))
}

// listAllBookings is the admin search with pagination and filters.
func (h *Handlers) listAllBookings(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	limit, err := queryInt(r, "limit", 10)
	if err != nil || limit <= 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "limit must be a positive integer")
		return
	}
	page, err := queryInt(r, "page", 0)
	if err != nil || page < 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "page must be a non-negative integer")
		return
	}
	q := domain.BookingsQuery{
		Limit:     limit,
		Page:      page,
		UserName:  queryStr(r, "userName"),
		UserEmail: queryStr(r, "userEmail"),
		HotelName: queryStr(r, "hotelName"),
	}
	if s := r.URL.Query().Get("date"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "date must be YYYY-MM-DD")
			return
		}
		q.MinDate = &t
	}

	vs, err := h.Bookings.ListAll(r.Context(), caller, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(vs))
}
