package repository

import (
	"fmt"
	"strings"

	"github.com/forgo/freelancehub/api/internal/model"
)

// projectColumns whitelists the fields a predicate may address
var projectColumns = map[string]string{
	model.FieldTechStack: "tech_stack",
	model.FieldBudget:    "budget",
	model.FieldStatus:    "status",
	model.FieldCreatedAt: "created_at",
}

var surrealOperators = map[model.Operator]string{
	model.OpContains: "CONTAINS",
	model.OpGTE:      ">=",
	model.OpLTE:      "<=",
	model.OpEq:       "=",
}

// renderWhere turns a predicate into a SurrealQL WHERE clause. Values are
// bound as $p0, $p1, ... so nothing user-supplied reaches the query text.
// An empty predicate renders as an empty clause.
func renderWhere(p model.Predicate) (string, map[string]interface{}, error) {
	vars := make(map[string]interface{}, len(p.Constraints))
	if p.IsEmpty() {
		return "", vars, nil
	}

	terms := make([]string, 0, len(p.Constraints))
	for i, c := range p.Constraints {
		col, ok := projectColumns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("unsupported field %q", c.Field)
		}
		op, ok := surrealOperators[c.Op]
		if !ok {
			return "", nil, fmt.Errorf("unsupported operator %q", c.Op)
		}
		name := fmt.Sprintf("p%d", i)
		terms = append(terms, fmt.Sprintf("%s %s $%s", col, op, name))
		vars[name] = bindValue(c.Value)
	}
	return " WHERE " + strings.Join(terms, " AND "), vars, nil
}

// renderOrder renders ORDER BY, LIMIT and START for list options
func renderOrder(opts model.ListOptions, vars map[string]interface{}) (string, error) {
	var b strings.Builder
	if opts.Sort.Field != "" {
		col, ok := projectColumns[opts.Sort.Field]
		if !ok {
			return "", fmt.Errorf("unsupported sort field %q", opts.Sort.Field)
		}
		dir := "ASC"
		if opts.Sort.Descending {
			dir = "DESC"
		}
		// id breaks created_at ties so pages stay stable
		fmt.Fprintf(&b, " ORDER BY %s %s, id %s", col, dir, dir)
	}
	if opts.Limit > 0 {
		b.WriteString(" LIMIT $limit")
		vars["limit"] = opts.Limit
	}
	if opts.Offset > 0 {
		b.WriteString(" START $start")
		vars["start"] = opts.Offset
	}
	return b.String(), nil
}

// bindValue unwraps named string types so the driver encodes plain values
func bindValue(v interface{}) interface{} {
	if s, ok := v.(model.ProjectStatus); ok {
		return string(s)
	}
	return v
}
