// Package shoulda provides declarative matchers and test macros for models
// built on the orm capability surface. Matchers translate terse declarations
// into generated subtests that introspect a model's association metadata and
// its backing schema.
package shoulda

// A Matcher is a configurable predicate that evaluates a boolean condition
// against a subject and supplies human-readable description and failure
// messages. The description is a complete sentence fragment that is used both
// as the generated subtest name and inside failure messages.
//
// Matchers are immutable builders: fluent configuration methods return an
// updated copy and leave the receiver untouched. Evaluation is idempotent
// and, except for the mass assignment and read-only matchers, side effect
// free on the subject.
type Matcher interface {
	// Matches evaluates the condition against the subject.
	Matches(subject interface{}) bool

	// Description returns the matched condition e.g. "have many dogs".
	Description() string

	// FailureMessage returns the message reported when a match was expected
	// but the evaluation failed.
	FailureMessage() string

	// NegatedFailureMessage returns the message reported when a mismatch was
	// expected but the evaluation succeeded.
	NegatedFailureMessage() string
}

func failureMessage(description, failure string) string {
	msg := "expected subject to " + description
	if failure != "" {
		msg += " (" + failure + ")"
	}

	return msg
}

func negatedFailureMessage(description string) string {
	return "expected subject not to " + description
}
