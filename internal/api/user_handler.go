package api

import (
	"net/http"

	"github.com/gabcerqueira/natours/internal/api/middleware"
	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/store"
)

// updateMeAllowedFields are the only profile fields a user can change
// about themselves. Everything else (role, active, password fields) goes
// through dedicated endpoints or admin routes.
var updateMeAllowedFields = map[string]struct{}{
	"name":  {},
	"email": {},
	"photo": {},
}

// UserHandler implements the self-service profile routes and the
// admin-only user CRUD.
type UserHandler struct {
	crud  CrudHandler[domain.User]
	users store.UserStore
}

// NewUserHandler creates a new UserHandler backed by the given store.
func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{
		crud: CrudHandler[domain.User]{
			Name:   "user",
			Plural: "users",
			Store:  users,
			BuildCreate: func(r *http.Request) (*domain.User, error) {
				var req SignUpRequest
				if err := shared.DecodeJSON(r, &req); err != nil {
					return nil, ErrMalformedBody
				}
				return domain.NewUser(req.Name, req.Email, req.Password,
					req.PasswordConfirm, domain.Role(req.Role))
			},
		},
		users: users,
	}
}

// List handles GET /api/v1/users (admin).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) { h.crud.List(w, r) }

// Get handles GET /api/v1/users/{id} (admin).
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) { h.crud.Get(w, r) }

// Create handles POST /api/v1/users (admin).
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) { h.crud.Create(w, r) }

// Update handles PATCH /api/v1/users/{id} (admin). Password fields never
// pass through the generic patch; the store drops them.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) { h.crud.Update(w, r) }

// Delete handles DELETE /api/v1/users/{id} (admin). Hard delete.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) { h.crud.Delete(w, r) }

// GetMe handles GET /api/v1/users/getMe for the authenticated caller.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetCurrentUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			"You are not logged in! Please log in to get access")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{"user": user})
}

// UpdateMe handles PATCH /api/v1/users/updateMe. Accepts profile fields
// only and rejects any attempt to change the password here.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetCurrentUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			"You are not logged in! Please log in to get access")
		return
	}

	var patch map[string]any
	if err := shared.DecodeJSON(r, &patch); err != nil {
		HandleAPIError(w, r, ErrMalformedBody, "")
		return
	}

	if _, ok := patch["password"]; ok {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"This route is not for password updates. Please use /updateMyPassword")
		return
	}
	if _, ok := patch["passwordConfirm"]; ok {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"This route is not for password updates. Please use /updateMyPassword")
		return
	}

	filtered := make(map[string]any, len(patch))
	for field, value := range patch {
		if _, ok := updateMeAllowedFields[field]; ok {
			filtered[field] = value
		}
	}

	updated, err := h.users.UpdateByID(r.Context(), user.ID.Hex(), filtered)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{"user": updated})
}

// DeleteMe handles DELETE /api/v1/users/deleteMe. Soft-deletes the caller
// by deactivating the account.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetCurrentUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			"You are not logged in! Please log in to get access")
		return
	}

	if err := h.users.Deactivate(r.Context(), user.ID.Hex()); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
