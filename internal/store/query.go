package store

import "net/url"

// Reserved list-query parameter names. Everything else is treated as a
// filter term.
const (
	ParamPage   = "page"
	ParamSort   = "sort"
	ParamLimit  = "limit"
	ParamFields = "fields"
)

// DefaultPage is the page applied when the request does not specify one.
const DefaultPage = 1

// ListQuery carries a generic key-value request for a list operation:
// filter terms, sort spec, field selection and pagination, plus a fixed
// scope that nested routes and default scopes merge into the filter.
type ListQuery struct {
	// Params holds the raw request query parameters. Non-reserved keys are
	// equality filters; `field[op]` keys with op in gte/gt/lte/lt become
	// comparison filters.
	Params url.Values

	// Scope holds fixed equality filters (e.g. the parent tour id on a
	// nested review listing). Scope entries always win over Params.
	Scope map[string]string
}

// NewListQuery builds a ListQuery from raw request parameters.
func NewListQuery(params url.Values) ListQuery {
	return ListQuery{Params: params}
}

// WithScope returns a copy of q with the given fixed filter added.
func (q ListQuery) WithScope(field, value string) ListQuery {
	scope := make(map[string]string, len(q.Scope)+1)
	for k, v := range q.Scope {
		scope[k] = v
	}
	scope[field] = value
	q.Scope = scope
	return q
}
