package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/config"
	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/mocks"
	"github.com/gabcerqueira/natours/internal/store"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                 "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:      90,
		CookieLifetimeDays:        90,
		ResetTokenLifetimeMinutes: 10,
	}
}

func newTestAuthHandler(
	users *mocks.MockUserStore,
	verifier *mocks.MockPasswordVerifier,
	mailer *mocks.MockMailer,
) *AuthHandler {
	return NewAuthHandler(
		users,
		&mocks.MockJWTService{Token: "signed.jwt.token"},
		verifier,
		mailer,
		testAuthConfig(),
		false,
	)
}

func storedUser() *domain.User {
	return &domain.User{
		ID:             primitive.NewObjectID(),
		Name:           "Jonas",
		Email:          "jonas@example.com",
		Role:           domain.RoleUser,
		HashedPassword: "$2a$12$somestoredhash",
		Active:         true,
	}
}

func jwtCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "jwt" {
			return c
		}
	}
	return nil
}

func TestSignUp(t *testing.T) {
	users := &mocks.MockUserStore{}
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})

	body := `{
		"name": "Jonas",
		"email": "Jonas@Example.COM",
		"password": "pass1234",
		"passwordConfirm": "pass1234"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signUp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, shared.StatusSuccess, env.Status)
	assert.Equal(t, "signed.jwt.token", env.Token)

	require.Len(t, users.Inserted, 1)
	assert.Equal(t, "jonas@example.com", users.Inserted[0].Email)
	assert.Equal(t, domain.RoleUser, users.Inserted[0].Role)

	cookie := jwtCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.jwt.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
}

func TestSignUp_ConfirmMismatch(t *testing.T) {
	users := &mocks.MockUserStore{}
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})

	body := `{
		"name": "Jonas",
		"email": "jonas@example.com",
		"password": "pass1234",
		"passwordConfirm": "different"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signUp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, users.Inserted)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	users := &mocks.MockUserStore{
		MockResource: mocks.MockResource[domain.User]{Err: store.ErrEmailExists},
	}
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})

	body := `{
		"name": "Jonas",
		"email": "jonas@example.com",
		"password": "pass1234",
		"passwordConfirm": "pass1234"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signUp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "This email is already in use", env.Message)
}

func TestLogin(t *testing.T) {
	user := storedUser()
	users := &mocks.MockUserStore{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			assert.Equal(t, "jonas@example.com", email)
			return user, nil
		},
	}
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})

	body := `{"email": "jonas@example.com", "password": "pass1234"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "signed.jwt.token", env.Token)
	require.NotNil(t, jwtCookie(rec))
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &mocks.MockUserStore{MockResource: mocks.MockResource[domain.User]{Doc: storedUser()}}
	verifier := &mocks.MockPasswordVerifier{Err: errors.New("hash mismatch")}
	h := newTestAuthHandler(users, verifier, &mocks.MockMailer{})

	body := `{"email": "jonas@example.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "Incorrect email or password", env.Message)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := &mocks.MockUserStore{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, store.ErrUserNotFound
		},
	}
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})

	body := `{"email": "ghost@example.com", "password": "whatever1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	// Indistinguishable from a wrong password
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "Incorrect email or password", env.Message)
}

func TestLogin_MissingCredentials(t *testing.T) {
	h := newTestAuthHandler(&mocks.MockUserStore{}, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(`{"email": "a@b.co"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "Please provide email and password!", env.Message)
}

func TestForgotPassword(t *testing.T) {
	user := storedUser()
	users := &mocks.MockUserStore{MockResource: mocks.MockResource[domain.User]{Doc: user}}
	mailer := &mocks.MockMailer{}
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, mailer)

	body := `{"email": "jonas@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/forgotPassword", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ForgotPassword(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "Token sent to email!", env.Message)

	require.Len(t, users.ResetTokenHashes, 1)
	require.Len(t, mailer.Sent, 1)
	assert.Equal(t, user.Email, mailer.Sent[0].To)
	assert.Contains(t, mailer.Sent[0].Body, "/api/v1/users/resetPassword/")
	// Only the hash is stored; the raw secret goes out by mail.
	assert.NotContains(t, mailer.Sent[0].Body, users.ResetTokenHashes[0])
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	users := &mocks.MockUserStore{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, store.ErrUserNotFound
		},
	}
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})

	body := `{"email": "ghost@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/forgotPassword", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ForgotPassword(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "There is no user with that email address", env.Message)
}

func TestForgotPassword_MailFailureClearsToken(t *testing.T) {
	user := storedUser()
	users := &mocks.MockUserStore{MockResource: mocks.MockResource[domain.User]{Doc: user}}
	mailer := &mocks.MockMailer{Err: errors.New("smtp unreachable")}
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, mailer)

	body := `{"email": "jonas@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/forgotPassword", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ForgotPassword(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, shared.StatusError, env.Status)
	assert.Equal(t, []string{user.ID.Hex()}, users.ClearedIDs)
}

func TestResetPassword(t *testing.T) {
	user := storedUser()
	var lookedUpHash string
	users := &mocks.MockUserStore{
		GetByResetTokenFn: func(ctx context.Context, tokenHash string) (*domain.User, error) {
			lookedUpHash = tokenHash
			return user, nil
		},
	}
	users.Doc = user
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})

	r := chi.NewRouter()
	r.Patch("/resetPassword/{token}", h.ResetPassword)

	body := `{"password": "newpass123", "passwordConfirm": "newpass123"}`
	req := httptest.NewRequest(http.MethodPatch, "/resetPassword/rawsecret", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The route parameter is hashed before lookup, never used directly.
	assert.NotEqual(t, "rawsecret", lookedUpHash)
	assert.Len(t, lookedUpHash, 64)
	assert.Equal(t, []string{user.ID.Hex()}, users.PasswordUpdateIDs)

	env := decodeBody(t, rec)
	assert.Equal(t, "signed.jwt.token", env.Token)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	users := &mocks.MockUserStore{
		GetByResetTokenFn: func(ctx context.Context, tokenHash string) (*domain.User, error) {
			return nil, store.ErrUserNotFound
		},
	}
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})

	r := chi.NewRouter()
	r.Patch("/resetPassword/{token}", h.ResetPassword)

	body := `{"password": "newpass123", "passwordConfirm": "newpass123"}`
	req := httptest.NewRequest(http.MethodPatch, "/resetPassword/expired", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "Token is invalid or has expired", env.Message)
	assert.Empty(t, users.PasswordUpdateIDs)
}

func TestUpdateMyPassword(t *testing.T) {
	user := storedUser()
	users := &mocks.MockUserStore{MockResource: mocks.MockResource[domain.User]{Doc: user}}
	verifier := &mocks.MockPasswordVerifier{
		CompareFn: func(hashedPassword, password string) error {
			assert.Equal(t, user.HashedPassword, hashedPassword)
			assert.Equal(t, "oldpass12", password)
			return nil
		},
	}
	h := newTestAuthHandler(users, verifier, &mocks.MockMailer{})

	body := `{
		"currentPassword": "oldpass12",
		"newPassword": "newpass123",
		"newPasswordConfirm": "newpass123"
	}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/updateMyPassword", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), shared.CurrentUserContextKey, user)
	rec := httptest.NewRecorder()
	h.UpdateMyPassword(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{user.ID.Hex()}, users.PasswordUpdateIDs)
	env := decodeBody(t, rec)
	assert.Equal(t, "signed.jwt.token", env.Token)
}

func TestUpdateMyPassword_WrongCurrent(t *testing.T) {
	user := storedUser()
	users := &mocks.MockUserStore{MockResource: mocks.MockResource[domain.User]{Doc: user}}
	verifier := &mocks.MockPasswordVerifier{Err: errors.New("hash mismatch")}
	h := newTestAuthHandler(users, verifier, &mocks.MockMailer{})

	body := `{
		"currentPassword": "wrongpass",
		"newPassword": "newpass123",
		"newPasswordConfirm": "newpass123"
	}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/updateMyPassword", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), shared.CurrentUserContextKey, user)
	rec := httptest.NewRecorder()
	h.UpdateMyPassword(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "Your current password is wrong", env.Message)
	assert.Empty(t, users.PasswordUpdateIDs)
}

func TestUpdateMyPassword_NotLoggedIn(t *testing.T) {
	h := newTestAuthHandler(&mocks.MockUserStore{}, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/updateMyPassword", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.UpdateMyPassword(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieExpiry(t *testing.T) {
	users := &mocks.MockUserStore{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return storedUser(), nil
		},
	}
	h := newTestAuthHandler(users, &mocks.MockPasswordVerifier{}, &mocks.MockMailer{})
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.timeFunc = func() time.Time { return fixed }

	body := `{"email": "jonas@example.com", "password": "pass1234"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	cookie := jwtCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, fixed.Add(90*24*time.Hour), cookie.Expires.UTC())
}
