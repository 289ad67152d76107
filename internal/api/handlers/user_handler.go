package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/korwin-dev/citelinks-be/internal/auth"
	"github.com/korwin-dev/citelinks-be/internal/mailer"
	"github.com/korwin-dev/citelinks-be/internal/models"
	"github.com/korwin-dev/citelinks-be/internal/services"
	"github.com/korwin-dev/citelinks-be/internal/validation"
)

const (
	textFieldMaxLength = 255

	welcomeSubject = "Welcome"
	welcomeBody    = "Not Implemented:  500"
)

// UserHandler handles the user listing and the registration/login/logout
// flow.
type UserHandler struct {
	users    services.UserServiceProvider
	tokens   services.TokenServiceProvider
	events   services.EventServiceProvider
	notifier mailer.Notifier
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, tokens services.TokenServiceProvider, events services.EventServiceProvider, notifier mailer.Notifier) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, events: events, notifier: notifier}
}

// List handles GET /users/ and returns all user projections.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	projections := make([]models.Projection, 0, len(users))
	for _, user := range users {
		projections = append(projections, user.Project())
	}
	writeJSON(w, http.StatusOK, projections)
}

// Register handles POST /registration. An already-authenticated caller is
// redirected instead of processed.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfAuthorized(w, r) {
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}

	if validation.InvalidTextFields(fields, []string{"email", "password"}, validation.FieldRules{}) ||
		validation.InvalidTextFields(fields, []string{"first_name", "last_name"},
			validation.FieldRules{MaxLength: textFieldMaxLength, OnlyLatin: true}) ||
		validation.InvalidTextFields(fields, []string{"organization"},
			validation.FieldRules{MaxLength: textFieldMaxLength}) ||
		!validation.CheckEmail(fields["email"]) ||
		!validation.CheckPassword(fields["password"]) {
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}

	existing, err := h.users.GetUserOrNone(fields["email"])
	if err != nil {
		log.Error().Err(err).Msg("Failed to check for existing user")
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}
	if existing != nil {
		writeErrorKind(w, http.StatusConflict, errUserExists)
		return
	}

	user, err := h.users.CreateUserFromFields(fields)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			writeErrorKind(w, http.StatusConflict, errUserExists)
			return
		}
		log.Error().Err(err).Str("email", fields["email"]).Msg("Failed to create user")
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}

	token, err := h.tokens.GetToken(fields["email"], fields["password"])
	if err != nil {
		log.Error().Err(err).Str("email", fields["email"]).Msg("Failed to issue token after registration")
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}

	h.recordEvent("user.registered", "New user registered", user.ID)

	// Fire and forget; a failed send never fails the registration.
	if err := h.notifier.Send(user.Email, welcomeSubject, welcomeBody); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token.Key})
}

// Login handles POST /login. An already-authenticated caller is redirected
// instead of processed.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfAuthorized(w, r) {
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}

	if validation.InvalidTextFields(fields, []string{"email", "password"}, validation.FieldRules{}) {
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}

	token, err := h.tokens.GetToken(fields["email"], fields["password"])
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Error().Err(err).Str("email", fields["email"]).Msg("Failed to issue token")
		}
		writeErrorKind(w, http.StatusBadRequest, errNotValid)
		return
	}

	h.recordEvent("user.login", "User logged in", token.UserID)

	writeJSON(w, http.StatusOK, map[string]string{"token": token.Key})
}

// Logout handles POST /logout. Deleting the carried token invalidates the
// session; without a token the request is a no-op. Always responds 200.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if key := auth.TokenFromRequest(r); key != "" {
		if err := h.tokens.DeleteToken(key); err != nil {
			log.Error().Err(err).Msg("Failed to delete token on logout")
		}
	}
	w.WriteHeader(http.StatusOK)
}

// redirectIfAuthorized sends authenticated callers away from the
// registration and login endpoints. Reports whether the request was
// handled.
func (h *UserHandler) redirectIfAuthorized(w http.ResponseWriter, r *http.Request) bool {
	if user := auth.UserFromRequest(r, h.tokens); user != nil {
		http.Redirect(w, r, "/users/", http.StatusFound)
		return true
	}
	return false
}

func (h *UserHandler) recordEvent(eventType, message, userID string) {
	if err := h.events.Record(eventType, "info", message, &userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
