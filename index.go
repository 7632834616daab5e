package shoulda

import (
	"fmt"
	"strings"

	"github.com/evansagge/shoulda/orm"
)

// interface assertion
var _ Matcher = (*IndexMatcher)(nil)

// An IndexMatcher verifies that an index exists on a column or an ordered
// tuple of columns, optionally verifying its uniqueness. Column order matters
// for composite indexes, the requested tuple is never reordered.
type IndexMatcher struct {
	columns []string
	unique  *bool
	failure string
}

// HaveIndexOn returns a matcher for an index on the provided ordered columns.
func HaveIndexOn(columns ...string) *IndexMatcher {
	return &IndexMatcher{columns: columns}
}

// Unique returns an updated matcher that additionally expects the matched
// index uniqueness.
func (m *IndexMatcher) Unique(unique bool) *IndexMatcher {
	n := *m
	n.unique = &unique
	return &n
}

// Matches implements the Matcher interface.
func (m *IndexMatcher) Matches(subject interface{}) bool {
	// get subject
	sub, ok := subject.(orm.Subject)
	if !ok {
		m.failure = "subject does not provide schema metadata"
		return false
	}

	// search for an index with the exact ordered column tuple
	var found *orm.Index
	for _, index := range sub.Indexes() {
		if columnsEqual(index.Columns, m.columns) {
			found = &index
			break
		}
	}
	if found == nil {
		m.failure = fmt.Sprintf("no index on [%s] found", strings.Join(m.columns, ", "))
		return false
	}

	// compare uniqueness, unset means don't care
	if m.unique != nil && found.Unique != *m.unique {
		m.failure = fmt.Sprintf("index on [%s] has uniqueness %t", strings.Join(m.columns, ", "), found.Unique)
		return false
	}

	return true
}

func columnsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Description implements the Matcher interface.
func (m *IndexMatcher) Description() string {
	description := "have index on [" + strings.Join(m.columns, ", ") + "]"
	if m.unique != nil {
		description += fmt.Sprintf(" with uniqueness %t", *m.unique)
	}

	return description
}

// FailureMessage implements the Matcher interface.
func (m *IndexMatcher) FailureMessage() string {
	return failureMessage(m.Description(), m.failure)
}

// NegatedFailureMessage implements the Matcher interface.
func (m *IndexMatcher) NegatedFailureMessage() string {
	return negatedFailureMessage(m.Description())
}
