package domain

import (
	"fmt"
	"time"
	"unicode"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty is the enumerated difficulty level of a tour.
type Difficulty string

// Accepted tour difficulties.
const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// Tour name length bounds.
const (
	TourNameMinLen = 5
	TourNameMaxLen = 50
)

// Default rating aggregate values for a tour without reviews.
const (
	DefaultRatingsAverage  = 4.5
	DefaultRatingsQuantity = 0
)

// Tour represents a bookable tour offering.
//
// SecretTour marks tours excluded from default listings; the store applies
// that scope on every read. The ratings aggregate fields are derived from
// reviews and recomputed by the review store after each review write.
type Tour struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"            json:"id"`
	Name            string             `bson:"name"                     json:"name"`
	Slug            string             `bson:"slug"                     json:"slug"`
	Duration        int                `bson:"duration"                 json:"duration"`
	Price           float64            `bson:"price"                    json:"price"`
	MaxGroupSize    int                `bson:"maxGroupSize"             json:"maxGroupSize"`
	Difficulty      Difficulty         `bson:"difficulty"               json:"difficulty"`
	RatingsAverage  float64            `bson:"ratingsAverage"           json:"ratingsAverage"`
	RatingsQuantity int                `bson:"ratingsQuantity"          json:"ratingsQuantity"`
	PriceDiscount   float64            `bson:"priceDiscount,omitempty"  json:"priceDiscount,omitempty"`
	Summary         string             `bson:"summary"                  json:"summary"`
	Description     string             `bson:"description,omitempty"    json:"description,omitempty"`
	ImageCover      string             `bson:"imageCover"               json:"imageCover"`
	Images          []string           `bson:"images,omitempty"         json:"images,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"                json:"createdAt"`
	StartDates      []time.Time        `bson:"startDates,omitempty"     json:"startDates,omitempty"`
	SecretTour      bool               `bson:"secretTour"               json:"secretTour"`

	// Reviews carries the tour's reviews when a read expands related
	// data. Never persisted on the tour document.
	Reviews []Review `bson:"-" json:"reviews,omitempty"`
}

// NewTour creates a Tour with generated defaults (rating aggregate, creation
// timestamp, derived slug). Returns the structured violation list if the
// provided fields fail validation.
func NewTour(t Tour) (*Tour, error) {
	t.ID = primitive.NewObjectID()
	t.CreatedAt = time.Now().UTC()
	if t.RatingsAverage == 0 {
		t.RatingsAverage = DefaultRatingsAverage
	}
	t.RatingsQuantity = DefaultRatingsQuantity
	t.DeriveSlug()

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeriveSlug recomputes the slug from the tour name. Must be called
// whenever the name changes before persisting.
func (t *Tour) DeriveSlug() {
	t.Slug = slug.Make(t.Name)
}

// Validate checks the Tour's field constraints. Returns a ValidationErrors
// list describing every violated constraint, or nil when the tour is valid.
func (t *Tour) Validate() error {
	var v violations

	switch {
	case t.Name == "":
		v.add("name", "a tour must have a name")
	case len(t.Name) < TourNameMinLen:
		v.add("name", fmt.Sprintf("the name must have at least %d characters", TourNameMinLen))
	case len(t.Name) > TourNameMaxLen:
		v.add("name", fmt.Sprintf("the name must have at most %d characters", TourNameMaxLen))
	case !isAlphaWithSpaces(t.Name):
		v.add("name", "the name must only contain letters")
	}

	if t.Duration <= 0 {
		v.add("duration", "a tour must have a duration")
	}
	if t.Price <= 0 {
		v.add("price", "a tour must have a price")
	}
	if t.MaxGroupSize <= 0 {
		v.add("maxGroupSize", "a tour must have a group size")
	}

	switch t.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
	default:
		v.add("difficulty", "only easy, medium or difficult is accepted")
	}

	if t.RatingsAverage < 1 || t.RatingsAverage > 5 {
		v.add("ratingsAverage", "a rating must be between 1 and 5")
	}
	if t.PriceDiscount != 0 && t.PriceDiscount >= t.Price {
		v.add("priceDiscount", fmt.Sprintf("the discount of %v should be below regular price", t.PriceDiscount))
	}
	if t.Summary == "" {
		v.add("summary", "a tour must have a summary")
	}
	if t.ImageCover == "" {
		v.add("imageCover", "a tour must have a cover image")
	}

	return v.err()
}

// isAlphaWithSpaces reports whether s consists only of letters and spaces.
func isAlphaWithSpaces(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}
