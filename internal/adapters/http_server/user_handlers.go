package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hotelbook/internal/domain"
)

type userResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Pseudo string `json:"pseudo"`
	Role   int    `json:"role"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Pseudo: u.Pseudo, Role: int(u.Role)}
}

type credentialsResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Pseudo   string `json:"pseudo"`
		Password string `json:"password"`
		Role     *int   `json:"role,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed body")
		return
	}

	// registration is public; the token is only looked at when present,
	// so an admin can create elevated accounts
	var caller *domain.Identity
	if raw := r.Header.Get("Authorization"); strings.HasPrefix(raw, "Bearer ") {
		if id, err := h.Tokens.Verify(strings.TrimPrefix(raw, "Bearer ")); err == nil {
			caller = &id
		}
	}
	var role *domain.Role
	if req.Role != nil {
		rr := domain.Role(*req.Role)
		role = &rr
	}

	creds, err := h.Users.Register(r.Context(), req.Email, req.Pseudo, req.Password, role, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, credentialsResponse{User: toUserResponse(creds.User), Token: creds.Token})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed body")
		return
	}
	creds, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credentialsResponse{User: toUserResponse(creds.User), Token: creds.Token})
}

// getUser serves both /users/me (no id param) and /users/{id}.
func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	u, err := h.Users.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	var req struct {
		Email    *string `json:"email,omitempty"`
		Pseudo   *string `json:"pseudo,omitempty"`
		Password *string `json:"password,omitempty"`
		Role     *int    `json:"role,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed body")
		return
	}
	upd := domain.UserUpdate{Email: req.Email, Pseudo: req.Pseudo, Password: req.Password}
	if req.Role != nil {
		rr := domain.Role(*req.Role)
		upd.Role = &rr
	}
	u, err := h.Users.Update(r.Context(), caller, chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	if err := h.Users.Delete(r.Context(), caller); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFrom(r.Context())
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := queryInt(r, "page", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	us, err := h.Users.List(r.Context(), caller, limit, page)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]userResponse, 0, len(us))
	for _, u := range us {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}
