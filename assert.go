package shoulda

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/evansagge/shoulda/orm"
)

// TestingT is the subset of testing.T used by the assertions.
type TestingT interface {
	Errorf(format string, args ...interface{})
}

type tHelper interface {
	Helper()
}

// AssertAccepts evaluates the matcher against the subject and fails the test
// with the matcher's failure message if the evaluation fails. Together with
// AssertRejects it is the sole bridge between matcher evaluation and the test
// framework's pass and fail signal.
func AssertAccepts(t TestingT, matcher Matcher, subject interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if !matcher.Matches(subject) {
		t.Errorf("%s", matcher.FailureMessage())
		return false
	}

	return true
}

// AssertRejects evaluates the matcher against the subject and fails the test
// with the matcher's negated failure message if the evaluation succeeds.
func AssertRejects(t TestingT, matcher Matcher, subject interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if matcher.Matches(subject) {
		t.Errorf("%s", matcher.NegatedFailureMessage())
		return false
	}

	return true
}

// FormatValidationErrors renders the validation errors of a model as one line
// per error, naming the attribute, the error message and the offending value
// for attribute level errors.
func FormatValidationErrors(model orm.Model, err error) string {
	// unpack validation errors
	var errs govalidator.Errors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	// render lines
	var lines []string
	for _, item := range flattenErrors(errs) {
		var gErr govalidator.Error
		if errors.As(item, &gErr) && gErr.Name != "" {
			value, ok := orm.Get(model, gErr.Name)
			if ok {
				lines = append(lines, fmt.Sprintf("%s %s (%q)", gErr.Name, gErr.Err, fmt.Sprintf("%v", value)))
				continue
			}
			lines = append(lines, fmt.Sprintf("%s %s", gErr.Name, gErr.Err))
			continue
		}
		lines = append(lines, item.Error())
	}

	return strings.Join(lines, "\n")
}

func flattenErrors(errs govalidator.Errors) []error {
	var out []error
	for _, err := range errs {
		var nested govalidator.Errors
		if errors.As(err, &nested) {
			out = append(out, flattenErrors(nested)...)
			continue
		}
		out = append(out, err)
	}

	return out
}
