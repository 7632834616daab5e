package shoulda

import (
	"fmt"
	"reflect"

	"github.com/evansagge/shoulda/orm"
)

// interface assertion
var _ Matcher = (*ScopeMatcher)(nil)

// A ScopeMatcher verifies that a named scope exists and, when invoked with
// the configured arguments, produces the expected finder options. Scopes are
// typed callables registered on the model meta, the produced query is
// compared structurally.
type ScopeMatcher struct {
	name    string
	args    []interface{}
	finding *orm.Query
	failure string
}

// HaveScope returns a matcher for the named scope.
func HaveScope(name string) *ScopeMatcher {
	return &ScopeMatcher{name: name}
}

// With returns an updated matcher that invokes the scope with the provided
// arguments.
func (m *ScopeMatcher) With(args ...interface{}) *ScopeMatcher {
	n := *m
	n.args = args
	return &n
}

// Finding returns an updated matcher that additionally expects the scope to
// produce the provided finder options.
func (m *ScopeMatcher) Finding(query orm.Query) *ScopeMatcher {
	n := *m
	n.finding = &query
	return &n
}

// Matches implements the Matcher interface.
func (m *ScopeMatcher) Matches(subject interface{}) bool {
	// get scoper
	sc, ok := subject.(orm.Scoper)
	if !ok {
		m.failure = "subject does not provide scopes"
		return false
	}

	// resolve scope
	fn, ok := sc.Scope(m.name)
	if !ok {
		m.failure = fmt.Sprintf("no scope %q registered", m.name)
		return false
	}

	// compare produced finder options, unset means don't care
	if m.finding != nil {
		query := fn(m.args...)
		if !reflect.DeepEqual(query, *m.finding) {
			m.failure = fmt.Sprintf("scope %q produced %+v", m.name, query)
			return false
		}
	}

	return true
}

// Description implements the Matcher interface.
func (m *ScopeMatcher) Description() string {
	description := "have scope " + m.name
	if len(m.args) > 0 {
		description += fmt.Sprintf(" with %v", m.args)
	}
	if m.finding != nil {
		description += fmt.Sprintf(" finding %+v", *m.finding)
	}

	return description
}

// FailureMessage implements the Matcher interface.
func (m *ScopeMatcher) FailureMessage() string {
	return failureMessage(m.Description(), m.failure)
}

// NegatedFailureMessage implements the Matcher interface.
func (m *ScopeMatcher) NegatedFailureMessage() string {
	return negatedFailureMessage(m.Description())
}
