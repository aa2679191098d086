package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/seojunkim/fitforge/internal/domain"
	"github.com/seojunkim/fitforge/internal/service"
	apperrors "github.com/seojunkim/fitforge/pkg/errors"
	"github.com/seojunkim/fitforge/pkg/logger"
	"github.com/seojunkim/fitforge/pkg/middleware"
	"github.com/seojunkim/fitforge/pkg/validator"
)

// UserHandler handles HTTP requests for the identity endpoints.
type UserHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(svc *service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: logger}
}

// WhoAmI handles GET /api/v1/users/me
//
// The user id comes from the verified token in the request context; the
// profile itself is re-read from the store so the response reflects current
// state, not the claims snapshot.
func (h *UserHandler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, response{OK: true, User: user.Profile()})
}

// ListUsers handles GET /api/v1/users (admin only, enforced by the router).
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	profiles := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}

	writeJSON(w, http.StatusOK, response{OK: true, Users: profiles})
}

// --- Response helpers ---

// response is the JSON envelope shared by every endpoint. Success bodies set
// ok=true plus whichever payload fields apply; error bodies carry only
// ok=false and a message.
type response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    any    `json:"user,omitempty"`
	Users   any    `json:"users,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{OK: false, Message: message})
}

// writeAppError maps a service error to its HTTP status and wire message.
// Unclassified errors stay opaque to the client and are logged server side.
func writeAppError(w http.ResponseWriter, r *http.Request, err error, log *slog.Logger) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeError(w, appErr.Status, appErr.Message)
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "server error"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		message = "resource already exists"
	case errors.Is(err, apperrors.ErrInvalidInput):
		message = "invalid input"
	case errors.Is(err, apperrors.ErrUnauthorized):
		message = "unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		message = "insufficient permissions"
	case errors.Is(err, apperrors.ErrServiceUnavail):
		message = "service unavailable"
	default:
		logger.WithContext(r.Context(), log).Error("unhandled error",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
		)
	}

	writeError(w, status, message)
}

// writeValidationError flattens a field validation failure into the error
// envelope so clients get one readable message.
func writeValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		writeError(w, http.StatusBadRequest, valErr.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "invalid input")
}
