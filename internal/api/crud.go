package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/store"
)

// ErrMalformedBody indicates a request body that could not be decoded.
var ErrMalformedBody = errors.New("malformed request body")

// CrudHandler implements the generic list/get/create/update/delete
// handlers for a resource, parameterized by its store. The per-resource
// handlers compose it and add their non-CRUD operations.
type CrudHandler[T any] struct {
	// Name keys a single document in the response envelope ("tour");
	// Plural keys a list ("tours").
	Name   string
	Plural string

	// Store is the persistence backend for the resource.
	Store store.Resource[T]

	// ExpandGet attaches related data on single-document reads.
	ExpandGet bool

	// BuildCreate constructs a validated new entity from the request.
	BuildCreate func(r *http.Request) (*T, error)

	// ListScope pre-scopes list queries from the request (parent-resource
	// ids on nested routes). Optional.
	ListScope func(r *http.Request) map[string]string
}

// List handles GET on the resource collection.
func (h *CrudHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	q := store.NewListQuery(r.URL.Query())
	if h.ListScope != nil {
		for field, value := range h.ListScope(r) {
			q = q.WithScope(field, value)
		}
	}

	docs, err := h.Store.Find(r.Context(), q)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithList(w, r, http.StatusOK, map[string]any{h.Plural: docs}, len(docs))
}

// Get handles GET on a single resource by id.
func (h *CrudHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Store.FindByID(r.Context(), chi.URLParam(r, "id"), h.ExpandGet)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{h.Name: doc})
}

// Create handles POST on the resource collection.
func (h *CrudHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	doc, err := h.BuildCreate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.Store.Insert(r.Context(), doc); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, map[string]any{h.Name: doc})
}

// Update handles PATCH on a single resource by id. The body is a partial
// document; validation re-runs on the merged result in the store.
func (h *CrudHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := shared.DecodeJSON(r, &patch); err != nil {
		HandleAPIError(w, r, ErrMalformedBody, "")
		return
	}

	doc, err := h.Store.UpdateByID(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{h.Name: doc})
}

// Delete handles DELETE on a single resource by id. Responds 204 with an
// empty body.
func (h *CrudHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
