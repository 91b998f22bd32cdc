package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/mocks"
	"github.com/gabcerqueira/natours/internal/store"
)

func sampleTour() domain.Tour {
	return domain.Tour{
		ID:         primitive.NewObjectID(),
		Name:       "The Forest Hiker",
		Slug:       "the-forest-hiker",
		Duration:   5,
		Price:      397,
		Difficulty: domain.DifficultyEasy,
	}
}

func newTourCrud(res *mocks.MockResource[domain.Tour]) *CrudHandler[domain.Tour] {
	return &CrudHandler[domain.Tour]{
		Name:      "tour",
		Plural:    "tours",
		Store:     res,
		ExpandGet: true,
		BuildCreate: func(r *http.Request) (*domain.Tour, error) {
			var body domain.Tour
			if err := shared.DecodeJSON(r, &body); err != nil {
				return nil, ErrMalformedBody
			}
			return domain.NewTour(body)
		},
	}
}

func serveWithID(h http.HandlerFunc, method, id string, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, "/{id}", h)

	req := httptest.NewRequest(method, "/"+id, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) shared.Envelope {
	t.Helper()
	var env shared.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestCrudList(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{Docs: []domain.Tour{sampleTour(), sampleTour()}}
	h := newTourCrud(res)

	req := httptest.NewRequest(http.MethodGet, "/?difficulty=easy", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, shared.StatusSuccess, env.Status)
	require.NotNil(t, env.Results)
	assert.Equal(t, 2, *env.Results)

	require.Len(t, res.FindQueries, 1)
	assert.Equal(t, "easy", res.FindQueries[0].Params.Get("difficulty"))
}

func TestCrudList_Scoped(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{}
	h := newTourCrud(res)
	h.ListScope = func(r *http.Request) map[string]string {
		return map[string]string{"tour": "aaaaaaaaaaaaaaaaaaaaaaaa"}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, res.FindQueries, 1)
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaa", res.FindQueries[0].Scope["tour"])
}

func TestCrudList_InvalidQuery(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{Err: store.ErrInvalidQuery}
	h := newTourCrud(res)

	req := httptest.NewRequest(http.MethodGet, "/?page=0", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, shared.StatusFail, env.Status)
}

func TestCrudGet(t *testing.T) {
	tour := sampleTour()
	res := &mocks.MockResource[domain.Tour]{Doc: &tour}
	h := newTourCrud(res)

	rec := serveWithID(h.Get, http.MethodGet, tour.ID.Hex(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeBody(t, rec)
	data := env.Data.(map[string]any)
	assert.Contains(t, data, "tour")
}

func TestCrudGet_NotFound(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{Err: store.ErrTourNotFound}
	h := newTourCrud(res)

	rec := serveWithID(h.Get, http.MethodGet, "aaaaaaaaaaaaaaaaaaaaaaaa", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	env := decodeBody(t, rec)
	assert.Equal(t, shared.StatusFail, env.Status)
	assert.Equal(t, "No tour found with that ID", env.Message)
}

func TestCrudGet_InvalidID(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{Err: store.ErrInvalidID}
	h := newTourCrud(res)

	rec := serveWithID(h.Get, http.MethodGet, "not-a-hex-id", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCrudCreate(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{}
	h := newTourCrud(res)

	body := `{
		"name": "The Forest Hiker",
		"duration": 5,
		"price": 397,
		"maxGroupSize": 25,
		"difficulty": "easy",
		"summary": "A forest hike",
		"imageCover": "cover.jpg"
	}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, res.Inserted, 1)
	assert.Equal(t, "the-forest-hiker", res.Inserted[0].Slug)
}

func TestCrudCreate_ValidationFailure(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{}
	h := newTourCrud(res)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "Hi"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, res.Inserted)
	env := decodeBody(t, rec)
	assert.Contains(t, env.Message, "Invalid input data")
}

func TestCrudCreate_MalformedBody(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{}
	h := newTourCrud(res)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "Invalid request format", env.Message)
}

func TestCrudCreate_DuplicateName(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{Err: store.ErrTourNameExists}
	h := newTourCrud(res)

	body := `{
		"name": "The Forest Hiker",
		"duration": 5,
		"price": 397,
		"maxGroupSize": 25,
		"difficulty": "easy",
		"summary": "A forest hike",
		"imageCover": "cover.jpg"
	}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeBody(t, rec)
	assert.Equal(t, "A tour with this name already exists", env.Message)
}

func TestCrudUpdate(t *testing.T) {
	tour := sampleTour()
	res := &mocks.MockResource[domain.Tour]{Doc: &tour}
	h := newTourCrud(res)

	rec := serveWithID(h.Update, http.MethodPatch, tour.ID.Hex(), `{"price": 497}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, res.Patches, 1)
	assert.Equal(t, float64(497), res.Patches[0]["price"])
}

func TestCrudUpdate_MalformedBody(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{}
	h := newTourCrud(res)

	rec := serveWithID(h.Update, http.MethodPatch, "aaaaaaaaaaaaaaaaaaaaaaaa", "{bad")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, res.Patches)
}

func TestCrudDelete(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{}
	h := newTourCrud(res)

	rec := serveWithID(h.Delete, http.MethodDelete, "aaaaaaaaaaaaaaaaaaaaaaaa", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []string{"aaaaaaaaaaaaaaaaaaaaaaaa"}, res.DeletedIDs)
}

func TestCrudDelete_NotFound(t *testing.T) {
	res := &mocks.MockResource[domain.Tour]{Err: store.ErrTourNotFound}
	h := newTourCrud(res)

	rec := serveWithID(h.Delete, http.MethodDelete, "aaaaaaaaaaaaaaaaaaaaaaaa", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
