package shoulda

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/evansagge/shoulda/orm"
)

// interface assertion
var _ Matcher = (*ColumnMatcher)(nil)

// A ColumnMatcher verifies that a named column exists on the subject's
// backing table and that every configured expectation matches the column's
// metadata. Unset expectations are skipped.
type ColumnMatcher struct {
	name      string
	typ       string
	sqlType   string
	limit     *int
	precision *int
	scale     *int
	deflt     interface{}
	nullable  *bool
	failure   string
}

// HaveColumn returns a matcher for the named column.
func HaveColumn(name string) *ColumnMatcher {
	return &ColumnMatcher{name: name}
}

// OfType returns an updated matcher that additionally expects the provided
// column type e.g. "string" or "integer".
func (m *ColumnMatcher) OfType(typ string) *ColumnMatcher {
	n := *m
	n.typ = typ
	return &n
}

// WithSQLType returns an updated matcher that additionally expects the
// provided raw SQL type e.g. "VARCHAR(255)".
func (m *ColumnMatcher) WithSQLType(sqlType string) *ColumnMatcher {
	n := *m
	n.sqlType = sqlType
	return &n
}

// WithLimit returns an updated matcher that additionally expects the provided
// character limit.
func (m *ColumnMatcher) WithLimit(limit int) *ColumnMatcher {
	n := *m
	n.limit = &limit
	return &n
}

// WithPrecision returns an updated matcher that additionally expects the
// provided numeric precision.
func (m *ColumnMatcher) WithPrecision(precision int) *ColumnMatcher {
	n := *m
	n.precision = &precision
	return &n
}

// WithScale returns an updated matcher that additionally expects the provided
// numeric scale.
func (m *ColumnMatcher) WithScale(scale int) *ColumnMatcher {
	n := *m
	n.scale = &scale
	return &n
}

// WithDefault returns an updated matcher that additionally expects the
// provided default value. Numeric defaults are compared as decimals so that
// "1.0" matches "1.00".
func (m *ColumnMatcher) WithDefault(value interface{}) *ColumnMatcher {
	n := *m
	n.deflt = value
	return &n
}

// Nullable returns an updated matcher that additionally expects the column
// nullability.
func (m *ColumnMatcher) Nullable(nullable bool) *ColumnMatcher {
	n := *m
	n.nullable = &nullable
	return &n
}

// Matches implements the Matcher interface.
func (m *ColumnMatcher) Matches(subject interface{}) bool {
	// get subject
	sub, ok := subject.(orm.Subject)
	if !ok {
		m.failure = "subject does not provide schema metadata"
		return false
	}

	// look up column
	column := sub.Column(m.name)
	if column == nil {
		m.failure = fmt.Sprintf("no column %q found", m.name)
		return false
	}

	// compare configured expectations
	if m.typ != "" && column.Type != m.typ {
		m.failure = fmt.Sprintf("column %q has type %q", m.name, column.Type)
		return false
	}
	if m.sqlType != "" && column.SQLType != m.sqlType {
		m.failure = fmt.Sprintf("column %q has SQL type %q", m.name, column.SQLType)
		return false
	}
	if m.limit != nil && column.Limit != *m.limit {
		m.failure = fmt.Sprintf("column %q has limit %d", m.name, column.Limit)
		return false
	}
	if m.precision != nil && column.Precision != *m.precision {
		m.failure = fmt.Sprintf("column %q has precision %d", m.name, column.Precision)
		return false
	}
	if m.scale != nil && column.Scale != *m.scale {
		m.failure = fmt.Sprintf("column %q has scale %d", m.name, column.Scale)
		return false
	}
	if m.nullable != nil && column.Nullable != *m.nullable {
		m.failure = fmt.Sprintf("column %q has nullability %t", m.name, column.Nullable)
		return false
	}
	if m.deflt != nil && !defaultEqual(m.deflt, column.Default) {
		if column.Default == nil {
			m.failure = fmt.Sprintf("column %q has no default", m.name)
		} else {
			m.failure = fmt.Sprintf("column %q has default %q", m.name, *column.Default)
		}
		return false
	}

	return true
}

// defaultEqual compares the expected default against the raw schema default.
// If both sides parse as decimals they are compared numerically.
func defaultEqual(expected interface{}, actual *string) bool {
	if actual == nil {
		return false
	}

	// render expectation
	rendered := fmt.Sprintf("%v", expected)

	// compare decimals if possible
	left, err1 := decimal.NewFromString(rendered)
	right, err2 := decimal.NewFromString(*actual)
	if err1 == nil && err2 == nil {
		return left.Equal(right)
	}

	return rendered == *actual
}

// Description implements the Matcher interface.
func (m *ColumnMatcher) Description() string {
	var parts []string
	if m.typ != "" {
		parts = append(parts, "type "+m.typ)
	}
	if m.sqlType != "" {
		parts = append(parts, "SQL type "+m.sqlType)
	}
	if m.limit != nil {
		parts = append(parts, fmt.Sprintf("limit %d", *m.limit))
	}
	if m.precision != nil {
		parts = append(parts, fmt.Sprintf("precision %d", *m.precision))
	}
	if m.scale != nil {
		parts = append(parts, fmt.Sprintf("scale %d", *m.scale))
	}
	if m.deflt != nil {
		parts = append(parts, fmt.Sprintf("default %v", m.deflt))
	}
	if m.nullable != nil {
		parts = append(parts, fmt.Sprintf("null %t", *m.nullable))
	}

	description := "have column " + m.name
	if len(parts) > 0 {
		description += " of " + strings.Join(parts, " and ")
	}

	return description
}

// FailureMessage implements the Matcher interface.
func (m *ColumnMatcher) FailureMessage() string {
	return failureMessage(m.Description(), m.failure)
}

// NegatedFailureMessage implements the Matcher interface.
func (m *ColumnMatcher) NegatedFailureMessage() string {
	return negatedFailureMessage(m.Description())
}
