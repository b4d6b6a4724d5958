package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelbook/internal/adapters/observability"
	"hotelbook/internal/app"
	"hotelbook/internal/domain"
)

type Handlers struct {
	Users    *app.UserService
	Hotels   *app.HotelService
	Bookings *app.BookingService
	Tokens   domain.TokenManager
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.With(RateLimit(1, 5)).Post("/users/register", h.register)
		r.With(RateLimit(1, 5)).Post("/users/login", h.login)

		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{id}", h.getHotel)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(h.Tokens))

			r.Get("/users", h.listUsers)
			r.Get("/users/me", h.getUser)
			r.Put("/users/me", h.updateUser)
			r.Delete("/users/me", h.deleteUser)
			r.Get("/users/{id}", h.getUser)
			r.Put("/users/{id}", h.updateUser)

			r.Post("/hotels", h.createHotel)
			r.Put("/hotels/{id}", h.updateHotel)
			r.Delete("/hotels/{id}", h.deleteHotel)
			r.Post("/hotels/{id}/upload", h.uploadHotelImages)
			r.Delete("/hotels/{hotelId}/files/{fileId}", h.deleteHotelImage)

			r.Get("/bookings", h.listAllBookings)
			r.Get("/bookings/users", h.listOwnBookings)
			r.Post("/bookings/{hotelId}", h.createBooking)
			r.Put("/bookings/{id}", h.updateBooking)
			r.Delete("/bookings/{id}", h.deleteBooking)
		})
	})
}

// ---- error/response plumbing ----

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError translates the domain error taxonomy to problem responses.
// Conflict/Forbidden/NotFound are expected outcomes, not bugs; only
// infrastructure failures get logged.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		observability.ObserveAuthRejection("unauthorized")
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		observability.ObserveAuthRejection("forbidden")
		writeProblem(w, http.StatusForbidden, "Forbidden", "insufficient role or ownership")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrValidation
	}
	return nil
}

// ---- query helpers ----

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrValidation
	}
	return domain.DateOnly(t), nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.ErrValidation
	}
	return n, nil
}

func queryStr(r *http.Request, key string) *string {
	if s := r.URL.Query().Get(key); s != "" {
		return &s
	}
	return nil
}
