package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/items-api/internal/service"
)

// UserHandler handles signup and login requests.
type UserHandler struct {
	auth *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// HandleSignup creates an account.
// POST /users
// Request:  {"name":"...","email":"...","password":"..."}
// Response: 201 {"id":"...","name":"...","email":"..."}
func (h *UserHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, "signup", err)
		return
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusCreated, toUserDTO(user))
}

// HandleLogin verifies credentials. No token or cookie is issued.
// POST /users/login
// Request:  {"email":"...","password":"..."}
// Response: 200 {"id":"...","name":"...","email":"..."}
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, "login", err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, toUserDTO(user))
}
