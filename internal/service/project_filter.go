package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/forgo/freelancehub/api/internal/model"
)

// FilterCriteria holds the optional listing filters of a single request.
// A nil pointer means the criterion was not supplied.
type FilterCriteria struct {
	Tech      *string
	MinBudget *int64
	MaxBudget *int64
	Status    *string
	Skip      int
	Limit     int
}

// BuildProjectPredicate composes every supplied criterion into one conjunction.
// Each budget bound is its own constraint, so supplying both yields a range.
// It never fails; contradictory bounds simply match nothing.
func BuildProjectPredicate(c FilterCriteria) model.Predicate {
	var p model.Predicate

	if c.Tech != nil {
		p = p.And(model.Constraint{Field: model.FieldTechStack, Op: model.OpContains, Value: *c.Tech})
	}
	if c.MinBudget != nil {
		p = p.And(model.Constraint{Field: model.FieldBudget, Op: model.OpGTE, Value: *c.MinBudget})
	}
	if c.MaxBudget != nil {
		p = p.And(model.Constraint{Field: model.FieldBudget, Op: model.OpLTE, Value: *c.MaxBudget})
	}
	if c.Status != nil {
		p = p.And(model.Constraint{Field: model.FieldStatus, Op: model.OpEq, Value: *c.Status})
	}

	return p
}

// ListOptions returns newest-first ordering with the criteria's pagination,
// clamping out-of-range values to the nearest bound.
func (c FilterCriteria) ListOptions() model.ListOptions {
	limit := c.Limit
	switch {
	case limit <= 0:
		limit = model.DefaultProjectLimit
	case limit > model.MaxProjectLimit:
		limit = model.MaxProjectLimit
	}
	skip := c.Skip
	if skip < 0 {
		skip = 0
	}
	return model.ListOptions{
		Sort:   model.SortOrder{Field: model.FieldCreatedAt, Descending: true},
		Offset: skip,
		Limit:  limit,
	}
}

// ParseProjectFilter reads listing criteria from query parameters.
// Empty parameters count as absent. Unparseable numbers and pagination
// outside skip >= 0, 1 <= limit <= 100 are reported as field errors.
func ParseProjectFilter(q url.Values) (FilterCriteria, []model.FieldError) {
	c := FilterCriteria{Limit: model.DefaultProjectLimit}
	var errs []model.FieldError

	if v := strings.TrimSpace(q.Get("tech")); v != "" {
		c.Tech = &v
	}
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		c.Status = &v
	}

	if v := q.Get("min_budget"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, model.FieldError{Field: "min_budget", Message: "must be an integer"})
		} else {
			c.MinBudget = &n
		}
	}
	if v := q.Get("max_budget"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, model.FieldError{Field: "max_budget", Message: "must be an integer"})
		} else {
			c.MaxBudget = &n
		}
	}

	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs = append(errs, model.FieldError{Field: "skip", Message: "must be an integer"})
		case n < 0:
			errs = append(errs, model.FieldError{Field: "skip", Message: "must be at least 0"})
		default:
			c.Skip = n
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs = append(errs, model.FieldError{Field: "limit", Message: "must be an integer"})
		case n < 1 || n > model.MaxProjectLimit:
			errs = append(errs, model.FieldError{
				Field:   "limit",
				Message: fmt.Sprintf("must be between 1 and %d", model.MaxProjectLimit),
			})
		default:
			c.Limit = n
		}
	}

	return c, errs
}
