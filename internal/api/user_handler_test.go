package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/mocks"
)

func authedRequest(method, target, body string, user *domain.User) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), shared.CurrentUserContextKey, user)
	return req.WithContext(ctx)
}

func TestGetMe(t *testing.T) {
	user := storedUser()
	h := NewUserHandler(&mocks.MockUserStore{})

	rec := httptest.NewRecorder()
	h.GetMe(rec, authedRequest(http.MethodGet, "/api/v1/users/me", "", user))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeBody(t, rec)
	data := env.Data.(map[string]any)
	require.Contains(t, data, "user")
	assert.Equal(t, user.Email, data["user"].(map[string]any)["email"])
}

func TestGetMe_NotLoggedIn(t *testing.T) {
	h := NewUserHandler(&mocks.MockUserStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()
	h.GetMe(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateMe(t *testing.T) {
	user := storedUser()
	users := &mocks.MockUserStore{MockResource: mocks.MockResource[domain.User]{Doc: user}}
	h := NewUserHandler(users)

	body := `{"name": "Jonas Updated", "email": "new@example.com", "role": "admin"}`
	rec := httptest.NewRecorder()
	h.UpdateMe(rec, authedRequest(http.MethodPatch, "/api/v1/users/updateMe", body, user))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, users.Patches, 1)
	assert.Equal(t, "Jonas Updated", users.Patches[0]["name"])
	assert.Equal(t, "new@example.com", users.Patches[0]["email"])
	// Role is not self-serviceable
	assert.NotContains(t, users.Patches[0], "role")
}

func TestUpdateMe_RejectsPasswordFields(t *testing.T) {
	user := storedUser()
	users := &mocks.MockUserStore{}
	h := NewUserHandler(users)

	for _, body := range []string{
		`{"password": "newpass123"}`,
		`{"passwordConfirm": "newpass123"}`,
	} {
		rec := httptest.NewRecorder()
		h.UpdateMe(rec, authedRequest(http.MethodPatch, "/api/v1/users/updateMe", body, user))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeBody(t, rec)
		assert.Contains(t, env.Message, "not for password updates")
	}
	assert.Empty(t, users.Patches)
}

func TestDeleteMe(t *testing.T) {
	user := storedUser()
	users := &mocks.MockUserStore{}
	h := NewUserHandler(users)

	rec := httptest.NewRecorder()
	h.DeleteMe(rec, authedRequest(http.MethodDelete, "/api/v1/users/deleteMe", "", user))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []string{user.ID.Hex()}, users.DeactivatedIDs)
}

func TestUserCreate_AdminFactory(t *testing.T) {
	users := &mocks.MockUserStore{}
	h := NewUserHandler(users)

	body := `{
		"name": "Guide Gal",
		"email": "guide@example.com",
		"password": "pass1234",
		"passwordConfirm": "pass1234",
		"role": "guide"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, users.Inserted, 1)
	assert.Equal(t, domain.RoleGuide, users.Inserted[0].Role)
}
