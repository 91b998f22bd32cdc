package mongodb

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gabcerqueira/natours/internal/store"
)

// versionField is the internal version field excluded from projections by
// default.
const versionField = "__v"

// comparisonOps are the filter operator tokens accepted in bracketed query
// keys (e.g. duration[gte]=5) and their MongoDB counterparts.
var comparisonOps = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// BuildFindQuery translates a generic list query into a bson filter and
// find options, applying filter, sort, field selection and pagination in
// that order. Pagination must be last so the skip/limit window applies to
// the filtered, sorted row set.
//
// Returns store.ErrInvalidQuery when the parameters cannot be translated
// (unknown comparison operator, empty field name, malformed page/limit).
func BuildFindQuery(q store.ListQuery, defaultLimit int) (bson.M, *options.FindOptions, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, nil, err
	}

	opts := options.Find()
	opts.SetSort(buildSort(q.Params.Get(store.ParamSort)))
	opts.SetProjection(buildProjection(q.Params.Get(store.ParamFields)))

	page, limit, err := parsePagination(q.Params, defaultLimit)
	if err != nil {
		return nil, nil, err
	}
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	return filter, opts, nil
}

// buildFilter turns every non-reserved parameter into an equality or
// comparison filter. Scope entries are applied last and always win.
func buildFilter(q store.ListQuery) (bson.M, error) {
	filter := bson.M{}

	for key, values := range q.Params {
		switch key {
		case store.ParamPage, store.ParamSort, store.ParamLimit, store.ParamFields:
			continue
		}
		if len(values) == 0 {
			continue
		}
		value := values[0]

		field, op, err := splitFilterKey(key)
		if err != nil {
			return nil, err
		}

		if op == "" {
			filter[field] = coerceValue(value)
			continue
		}

		// Multiple operators on the same field merge into one document
		// (e.g. duration[gte]=5&duration[lte]=9).
		ops, ok := filter[field].(bson.M)
		if !ok {
			ops = bson.M{}
			filter[field] = ops
		}
		ops[op] = coerceValue(value)
	}

	// Scope values come from code, not the query string; they are applied
	// verbatim so an all-digit ObjectID is not mistaken for a number.
	for field, value := range q.Scope {
		filter[field] = value
	}

	return filter, nil
}

// splitFilterKey parses a filter key of the form `field` or `field[op]`,
// returning the translated MongoDB operator for the latter.
func splitFilterKey(key string) (field, op string, err error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		if key == "" {
			return "", "", fmt.Errorf("%w: empty filter field", store.ErrInvalidQuery)
		}
		return key, "", nil
	}

	if open == 0 || !strings.HasSuffix(key, "]") {
		return "", "", fmt.Errorf("%w: malformed filter key %q", store.ErrInvalidQuery, key)
	}

	field = key[:open]
	token := key[open+1 : len(key)-1]
	mongoOp, ok := comparisonOps[token]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown filter operator %q", store.ErrInvalidQuery, token)
	}
	return field, mongoOp, nil
}

// coerceValue converts a query string value to the most specific type:
// number, then boolean, then string. MongoDB comparisons are
// type-sensitive, so "5" must match a numeric document field.
func coerceValue(s string) any {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// buildSort parses the comma-separated sort spec. A leading '-' marks a
// field descending. Defaults to descending creation time.
func buildSort(spec string) bson.D {
	if spec == "" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}

	var sort bson.D
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		if field == "" {
			continue
		}
		sort = append(sort, bson.E{Key: field, Value: order})
	}

	if len(sort) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return sort
}

// buildProjection parses the comma-separated inclusion list. Defaults to
// excluding the internal version field.
func buildProjection(spec string) bson.D {
	if spec == "" {
		return bson.D{{Key: versionField, Value: 0}}
	}

	var projection bson.D
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		projection = append(projection, bson.E{Key: field, Value: 1})
	}

	if len(projection) == 0 {
		return bson.D{{Key: versionField, Value: 0}}
	}
	return projection
}

// parsePagination reads page and limit with their documented defaults.
func parsePagination(params map[string][]string, defaultLimit int) (page, limit int, err error) {
	page, err = positiveIntParam(params, store.ParamPage, store.DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err = positiveIntParam(params, store.ParamLimit, defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func positiveIntParam(params map[string][]string, name string, def int) (int, error) {
	values := params[name]
	if len(values) == 0 || values[0] == "" {
		return def, nil
	}
	n, err := strconv.Atoi(values[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", store.ErrInvalidQuery, name)
	}
	return n, nil
}
