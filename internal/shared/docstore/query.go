package docstore

// Operator is a predicate comparison
type Operator string

const (
	OpEq  Operator = "eq"
	OpIn  Operator = "in"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	// OpContainsFold matches strings containing Value, ignoring case. Value is literal text,
	// not a pattern.
	OpContainsFold Operator = "contains_fold"
)

// Predicate constrains one field. Eq and In match array fields when any element matches.
type Predicate struct {
	Field string
	Op    Operator
	Value interface{}
}

// SortField orders results by one field
type SortField struct {
	Field      string
	Descending bool
}

// Query is a conjunction of predicates with optional ordering and limit.
// A zero Limit means no limit.
type Query struct {
	Predicates []Predicate
	Sorts      []SortField
	Limit      int64
}

// NewQuery returns an empty query matching every document
func NewQuery() *Query {
	return &Query{}
}

// Where adds a predicate
func (q *Query) Where(field string, op Operator, value interface{}) *Query {
	q.Predicates = append(q.Predicates, Predicate{Field: field, Op: op, Value: value})
	return q
}

// Eq adds an equality predicate
func (q *Query) Eq(field string, value interface{}) *Query {
	return q.Where(field, OpEq, value)
}

// OrderBy appends a sort key
func (q *Query) OrderBy(field string, descending bool) *Query {
	q.Sorts = append(q.Sorts, SortField{Field: field, Descending: descending})
	return q
}

// WithLimit caps the number of results
func (q *Query) WithLimit(limit int64) *Query {
	q.Limit = limit
	return q
}

// ByID matches the document whose primary key is id
func ByID(id interface{}) *Query {
	return NewQuery().Eq("_id", id)
}
