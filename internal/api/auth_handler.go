package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gabcerqueira/natours/internal/api/middleware"
	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/config"
	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/platform/mail"
	"github.com/gabcerqueira/natours/internal/service/auth"
	"github.com/gabcerqueira/natours/internal/store"
)

// jwtCookieName mirrors the bearer token in a cookie for browser clients.
const jwtCookieName = "jwt"

// AuthHandler implements signup, login and the password lifecycle
// (forgot, reset, logged-in change).
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	mailer           mail.Mailer
	authConfig       config.AuthConfig
	secureCookies    bool
	timeFunc         func() time.Time
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	mailer mail.Mailer,
	authConfig config.AuthConfig,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		mailer:           mailer,
		authConfig:       authConfig,
		secureCookies:    secureCookies,
		timeFunc:         time.Now,
	}
}

// SignUp handles POST /api/v1/users/signUp.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, ErrMalformedBody, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid input data")
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password, req.PasswordConfirm, domain.Role(req.Role))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userStore.Insert(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.createSendToken(w, r, user, http.StatusCreated)
}

// Login handles POST /api/v1/users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, ErrMalformedBody, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Please provide email and password!")
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Same answer as a wrong password, so the endpoint does not
			// reveal which emails exist.
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"Incorrect email or password")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			"Incorrect email or password")
		return
	}

	h.createSendToken(w, r, user, http.StatusOK)
}

// ForgotPassword handles POST /api/v1/users/forgotPassword. Generates a
// reset secret, stores its hash and mails the raw value to the user.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, ErrMalformedBody, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Please provide a valid email")
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				"There is no user with that email address")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	lifetime := time.Duration(h.authConfig.ResetTokenLifetimeMinutes) * time.Minute
	token, err := auth.NewResetToken(lifetime)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	userID := user.ID.Hex()
	if err := h.userStore.SetResetToken(r.Context(), userID, token.Hash, token.Expires); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	resetURL := fmt.Sprintf("%s://%s/api/v1/users/resetPassword/%s", scheme, r.Host, token.Raw)
	body := fmt.Sprintf(
		"Forgot your password? Submit a PATCH request with your new password and passwordConfirm to: %s.\nIf you didn't forget your password, please ignore this email!",
		resetURL)

	if err := h.mailer.Send(r.Context(), user.Email,
		"Your password reset token (valid for 10 min)", body); err != nil {
		// The stored hash is useless without the raw value that just
		// failed to go out; clear it so a later attempt starts clean.
		if clearErr := h.userStore.ClearResetToken(r.Context(), userID); clearErr != nil {
			slog.Error("failed to clear reset token after mail failure",
				"error", clearErr, "user_id", userID)
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"There was an error sending the email. Try again later!", err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Token sent to email!")
}

// ResetPassword handles PATCH /api/v1/users/resetPassword/{token}.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, ErrMalformedBody, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid input data")
		return
	}

	hash := auth.HashResetToken(chi.URLParam(r, "token"))
	user, err := h.userStore.GetByResetToken(r.Context(), hash)
	if err != nil {
		if store.IsNotFoundError(err) {
			HandleAPIError(w, r, auth.ErrResetTokenInvalid, "")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	updated, err := h.userStore.UpdatePassword(r.Context(), user.ID.Hex(), req.Password, req.PasswordConfirm)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.createSendToken(w, r, updated, http.StatusOK)
}

// UpdateMyPassword handles PATCH /api/v1/users/updateMyPassword for the
// authenticated caller. Requires the current password.
func (h *AuthHandler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetCurrentUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			"You are not logged in! Please log in to get access")
		return
	}

	var req UpdatePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, ErrMalformedBody, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid input data")
		return
	}

	// The middleware loads users through the default read path, which
	// omits credentials; fetch the hash for verification.
	withHash, err := h.userStore.GetByEmail(r.Context(), user.Email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.passwordVerifier.Compare(withHash.HashedPassword, req.CurrentPassword); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			"Your current password is wrong")
		return
	}

	updated, err := h.userStore.UpdatePassword(r.Context(), user.ID.Hex(), req.NewPassword, req.NewPasswordConfirm)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.createSendToken(w, r, updated, http.StatusOK)
}

// createSendToken issues a fresh token for the user, sets the jwt cookie
// and writes the success envelope.
func (h *AuthHandler) createSendToken(w http.ResponseWriter, r *http.Request, user *domain.User, status int) {
	token, err := h.jwtService.GenerateToken(r.Context(), user.ID.Hex())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookieName,
		Value:    token,
		Path:     "/",
		Expires:  h.timeFunc().Add(time.Duration(h.authConfig.CookieLifetimeDays) * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secureCookies,
	})

	shared.RespondWithToken(w, r, status, token, map[string]any{"user": user})
}
