package mongostore

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/forgo/freelancehub/api/internal/model"
)

var projectFields = map[string]string{
	model.FieldTechStack: "tech_stack",
	model.FieldBudget:    "budget",
	model.FieldStatus:    "status",
	model.FieldCreatedAt: "created_at",
}

// renderFilter converts a predicate into a MongoDB filter document.
// An empty predicate matches every document.
func renderFilter(p model.Predicate) (bson.D, error) {
	if p.IsEmpty() {
		return bson.D{}, nil
	}

	clauses := make(bson.A, 0, len(p.Constraints))
	for _, c := range p.Constraints {
		field, ok := projectFields[c.Field]
		if !ok {
			return nil, fmt.Errorf("unsupported field %q", c.Field)
		}
		value := c.Value
		if s, ok := value.(model.ProjectStatus); ok {
			value = string(s)
		}

		var clause bson.D
		switch c.Op {
		case model.OpContains, model.OpEq:
			// equality on an array field matches any element
			clause = bson.D{{Key: field, Value: value}}
		case model.OpGTE:
			clause = bson.D{{Key: field, Value: bson.D{{Key: "$gte", Value: value}}}}
		case model.OpLTE:
			clause = bson.D{{Key: field, Value: bson.D{{Key: "$lte", Value: value}}}}
		default:
			return nil, fmt.Errorf("unsupported operator %q", c.Op)
		}
		clauses = append(clauses, clause)
	}
	return bson.D{{Key: "$and", Value: clauses}}, nil
}

// findOptions renders sort and pagination for a Find call
func findOptions(opts model.ListOptions) (*options.FindOptionsBuilder, error) {
	fo := options.Find()
	if opts.Sort.Field != "" {
		field, ok := projectFields[opts.Sort.Field]
		if !ok {
			return nil, fmt.Errorf("unsupported sort field %q", opts.Sort.Field)
		}
		dir := 1
		if opts.Sort.Descending {
			dir = -1
		}
		// _id breaks ties so pages are stable
		fo.SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}})
	}
	if opts.Offset > 0 {
		fo.SetSkip(int64(opts.Offset))
	}
	if opts.Limit > 0 {
		fo.SetLimit(int64(opts.Limit))
	}
	return fo, nil
}
