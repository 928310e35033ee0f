package model

// Project fields addressable by a query predicate
const (
	FieldTechStack = "tech_stack"
	FieldBudget    = "budget"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

// Operator is a comparison applied by a single constraint
type Operator string

const (
	OpContains Operator = "CONTAINS" // list field holds the value
	OpGTE      Operator = ">="
	OpLTE      Operator = "<="
	OpEq       Operator = "="
)

// Constraint restricts one field of a project
type Constraint struct {
	Field string
	Op    Operator
	Value interface{}
}

// Predicate is a conjunction of constraints. The zero value matches everything.
type Predicate struct {
	Constraints []Constraint
}

// And returns a predicate with c appended. The receiver is not modified.
func (p Predicate) And(c Constraint) Predicate {
	out := make([]Constraint, len(p.Constraints), len(p.Constraints)+1)
	copy(out, p.Constraints)
	return Predicate{Constraints: append(out, c)}
}

// IsEmpty reports whether the predicate places no restriction
func (p Predicate) IsEmpty() bool {
	return len(p.Constraints) == 0
}

// Matches evaluates the predicate against a project in memory
func (p Predicate) Matches(project *Project) bool {
	if project == nil {
		return false
	}
	for _, c := range p.Constraints {
		if !c.matches(project) {
			return false
		}
	}
	return true
}

func (c Constraint) matches(project *Project) bool {
	switch c.Field {
	case FieldTechStack:
		tag, ok := c.Value.(string)
		if !ok || c.Op != OpContains {
			return false
		}
		for _, t := range project.TechStack {
			if t == tag {
				return true
			}
		}
		return false
	case FieldBudget:
		bound, ok := toInt64(c.Value)
		if !ok {
			return false
		}
		switch c.Op {
		case OpGTE:
			return project.Budget >= bound
		case OpLTE:
			return project.Budget <= bound
		case OpEq:
			return project.Budget == bound
		}
		return false
	case FieldStatus:
		switch v := c.Value.(type) {
		case ProjectStatus:
			return c.Op == OpEq && project.Status == v
		case string:
			return c.Op == OpEq && string(project.Status) == v
		}
		return false
	}
	return false
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// SortOrder names a field and direction for result ordering
type SortOrder struct {
	Field      string
	Descending bool
}

// ListOptions controls ordering and pagination of a query
type ListOptions struct {
	Sort   SortOrder
	Offset int
	Limit  int
}
