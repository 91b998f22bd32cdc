package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/store"
)

// TourHandler implements the tour CRUD routes plus the aggregation
// endpoints (top-5-cheap alias, stats, monthly plan).
type TourHandler struct {
	crud  CrudHandler[domain.Tour]
	tours store.TourStore
}

// NewTourHandler creates a new TourHandler backed by the given store.
func NewTourHandler(tours store.TourStore) *TourHandler {
	return &TourHandler{
		crud: CrudHandler[domain.Tour]{
			Name:      "tour",
			Plural:    "tours",
			Store:     tours,
			ExpandGet: true,
			BuildCreate: func(r *http.Request) (*domain.Tour, error) {
				var body domain.Tour
				if err := shared.DecodeJSON(r, &body); err != nil {
					return nil, ErrMalformedBody
				}
				return domain.NewTour(body)
			},
		},
		tours: tours,
	}
}

// List handles GET /api/v1/tours.
func (h *TourHandler) List(w http.ResponseWriter, r *http.Request) { h.crud.List(w, r) }

// Get handles GET /api/v1/tours/{id}, with reviews expanded.
func (h *TourHandler) Get(w http.ResponseWriter, r *http.Request) { h.crud.Get(w, r) }

// Create handles POST /api/v1/tours.
func (h *TourHandler) Create(w http.ResponseWriter, r *http.Request) { h.crud.Create(w, r) }

// Update handles PATCH /api/v1/tours/{id}.
func (h *TourHandler) Update(w http.ResponseWriter, r *http.Request) { h.crud.Update(w, r) }

// Delete handles DELETE /api/v1/tours/{id}.
func (h *TourHandler) Delete(w http.ResponseWriter, r *http.Request) { h.crud.Delete(w, r) }

// TopFiveCheap handles GET /api/v1/tours/top-5-cheap: the standard list
// with a preset query selecting the five best-rated cheapest tours.
func (h *TourHandler) TopFiveCheap(w http.ResponseWriter, r *http.Request) {
	preset := url.Values{
		store.ParamLimit:  {"5"},
		store.ParamSort:   {"-ratingsAverage,price"},
		store.ParamFields: {"name,price,ratingsAverage,summary,difficulty"},
	}
	r.URL.RawQuery = preset.Encode()
	h.crud.List(w, r)
}

// Stats handles GET /api/v1/tours/tour-stats.
func (h *TourHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tours.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{"stats": stats})
}

// MonthlyPlan handles GET /api/v1/tours/monthlyPlain/{year}.
func (h *TourHandler) MonthlyPlan(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid year")
		return
	}

	plan, err := h.tours.MonthlyPlan(r.Context(), year)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithList(w, r, http.StatusOK, map[string]any{"plan": plan}, len(plan))
}
