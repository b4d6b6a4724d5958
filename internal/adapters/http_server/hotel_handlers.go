package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hotelbook/internal/app"
	"hotelbook/internal/domain"
)

type hotelResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	PictureList []string `json:"picture_list"`
}

func toHotelResponse(h domain.Hotel) hotelResponse {
	pics := h.Pictures
	if pics == nil {
		pics = []string{}
	}
	return hotelResponse{ID: h.ID, Name: h.Name, Location: h.Location, Description: h.Description, PictureList: pics}
}

// listHotels is the availability-filtered listing: limit, page,
// location, startDate, endDate are all optional query parameters.
func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
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

	q := domain.HotelsQuery{Limit: limit, Page: page, Location: queryStr(r, "location")}
	if s := r.URL.Query().Get("startDate"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "startDate must be YYYY-MM-DD")
			return
		}
		q.Start = &t
	}
	if s := r.URL.Query().Get("endDate"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "endDate must be YYYY-MM-DD")
			return
		}
		q.End = &t
	}

	hotels, err := h.Hotels.List(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]hotelResponse, 0, len(hotels))
	for _, ht := range hotels {
		out = append(out, toHotelResponse(ht))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	ht, err := h.Hotels.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelResponse(ht))
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	var req struct {
		Name        string `json:"name"`
		Location    string `json:"location"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed body")
		return
	}
	ht, err := h.Hotels.Create(r.Context(), caller, domain.Hotel{
		Name: req.Name, Location: req.Location, Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHotelResponse(ht))
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	var req struct {
		Name        *string `json:"name,omitempty"`
		Location    *string `json:"location,omitempty"`
		Description *string `json:"description,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed body")
		return
	}
	ht, err := h.Hotels.Update(r.Context(), caller, chi.URLParam(r, "id"), domain.HotelUpdate{
		Name: req.Name, Location: req.Location, Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelResponse(ht))
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	if err := h.Hotels.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "hotel deleted"})
}

// uploadHotelImages accepts multipart/form-data with one or more
// "images" parts; only image content types are admitted.
func (h *Handlers) uploadHotelImages(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	const maxUpload = 5 << 20 // per file
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "expected multipart form")
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "no images supplied")
		return
	}

	var uploads []app.Upload
	for _, fh := range files {
		if fh.Size > maxUpload {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "image exceeds 5MB")
			return
		}
		if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "only images are allowed")
			return
		}
		f, err := fh.Open()
		if err != nil {
			writeError(w, err)
			return
		}
		defer f.Close()
		uploads = append(uploads, app.Upload{Filename: fh.Filename, Content: f})
	}

	paths, err := h.Hotels.UploadImages(r.Context(), caller, chi.URLParam(r, "id"), uploads)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, paths)
}

func (h *Handlers) deleteHotelImage(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	err := h.Hotels.DeleteImage(r.Context(), caller, chi.URLParam(r, "hotelId"), chi.URLParam(r, "fileId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "file deleted"})
}
