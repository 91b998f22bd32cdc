package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gabcerqueira/natours/internal/api/middleware"
	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/store"
)

// ReviewHandler implements the review CRUD routes, both top-level and
// nested under a tour.
type ReviewHandler struct {
	crud CrudHandler[domain.Review]
}

// NewReviewHandler creates a new ReviewHandler backed by the given store.
func NewReviewHandler(reviews store.ReviewStore) *ReviewHandler {
	h := &ReviewHandler{}
	h.crud = CrudHandler[domain.Review]{
		Name:        "review",
		Plural:      "reviews",
		Store:       reviews,
		ExpandGet:   true,
		BuildCreate: h.buildCreate,
		ListScope: func(r *http.Request) map[string]string {
			if tourID := chi.URLParam(r, "tourId"); tourID != "" {
				return map[string]string{"tour": tourID}
			}
			return nil
		},
	}
	return h
}

// buildCreate constructs a review from the request body. On the nested
// route the tour comes from the route parameter, and the author is always
// the authenticated caller unless the body names one explicitly.
func (h *ReviewHandler) buildCreate(r *http.Request) (*domain.Review, error) {
	var req CreateReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return nil, ErrMalformedBody
	}
	if err := shared.ValidateRequest(req); err != nil {
		return nil, domain.ErrValidation
	}

	if req.Tour == "" {
		req.Tour = chi.URLParam(r, "tourId")
	}
	tourID, err := primitive.ObjectIDFromHex(req.Tour)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var userID primitive.ObjectID
	if req.User != "" {
		if userID, err = primitive.ObjectIDFromHex(req.User); err != nil {
			return nil, domain.ErrInvalidID
		}
	} else if user, ok := middleware.GetCurrentUser(r); ok {
		userID = user.ID
	}

	return domain.NewReview(req.Review, req.Rating, tourID, userID)
}

// List handles GET /api/v1/reviews and GET /api/v1/tours/{tourId}/reviews.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) { h.crud.List(w, r) }

// Get handles GET /api/v1/reviews/{id}, with the author expanded.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) { h.crud.Get(w, r) }

// Create handles POST /api/v1/reviews and the nested equivalent.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) { h.crud.Create(w, r) }

// Update handles PATCH /api/v1/reviews/{id}.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) { h.crud.Update(w, r) }

// Delete handles DELETE /api/v1/reviews/{id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) { h.crud.Delete(w, r) }
