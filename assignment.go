package shoulda

import (
	"fmt"
	"reflect"

	"github.com/evansagge/shoulda/orm"
)

// interface assertions
var _ Matcher = (*MassAssignmentMatcher)(nil)
var _ Matcher = (*ReadonlyMatcher)(nil)

// persistableRecord combines the capabilities needed by the read-only
// matcher.
type persistableRecord interface {
	orm.Record
	orm.Persister
}

// A MassAssignmentMatcher verifies whether a named attribute can be set
// through the mass assignment pathway. The behavior is observed empirically
// by attempting the mutation, the declared protection lists are never
// inspected directly. The mutation is reverted before the matcher returns.
type MassAssignmentMatcher struct {
	attribute string
	failure   string
}

// AllowMassAssignmentOf returns a matcher that accepts a subject whose named
// attribute changes when assigned through the mass assignment pathway. Use
// the reject assertion to verify an attribute is protected.
func AllowMassAssignmentOf(attribute string) *MassAssignmentMatcher {
	return &MassAssignmentMatcher{attribute: attribute}
}

// Matches implements the Matcher interface.
func (m *MassAssignmentMatcher) Matches(subject interface{}) bool {
	// get record
	rec, ok := subject.(orm.Record)
	if !ok {
		m.failure = "subject does not provide attribute access"
		return false
	}

	// read current value
	old, ok := rec.Get(m.attribute)
	if !ok {
		m.failure = fmt.Sprintf("no attribute %q found", m.attribute)
		return false
	}

	// derive a probe value
	probe, ok := probeValue(old)
	if !ok {
		m.failure = fmt.Sprintf("cannot derive a probe value for attribute %q", m.attribute)
		return false
	}

	// attempt the mass assignment
	err := rec.Assign(map[string]interface{}{m.attribute: probe})
	if err != nil {
		m.failure = err.Error()
		return false
	}

	// observe whether the value changed
	now, _ := rec.Get(m.attribute)
	changed := !reflect.DeepEqual(now, old)

	// revert the transient mutation
	rec.Set(m.attribute, old)

	if !changed {
		m.failure = fmt.Sprintf("attribute %q did not change", m.attribute)
	}

	return changed
}

// Description implements the Matcher interface.
func (m *MassAssignmentMatcher) Description() string {
	return "allow mass assignment of " + m.attribute
}

// FailureMessage implements the Matcher interface.
func (m *MassAssignmentMatcher) FailureMessage() string {
	return failureMessage(m.Description(), m.failure)
}

// NegatedFailureMessage implements the Matcher interface.
func (m *MassAssignmentMatcher) NegatedFailureMessage() string {
	return negatedFailureMessage(m.Description())
}

// A ReadonlyMatcher verifies that a named attribute is read-only after
// creation: a direct mutation followed by a save and reload must have no
// effect on the persisted value. A leaked mutation is reverted before the
// matcher returns.
type ReadonlyMatcher struct {
	attribute string
	failure   string
}

// HaveReadonlyAttribute returns a matcher for the named read-only attribute.
func HaveReadonlyAttribute(attribute string) *ReadonlyMatcher {
	return &ReadonlyMatcher{attribute: attribute}
}

// Matches implements the Matcher interface.
func (m *ReadonlyMatcher) Matches(subject interface{}) bool {
	// get record
	rec, ok := subject.(persistableRecord)
	if !ok {
		m.failure = "subject does not provide attribute access and persistence"
		return false
	}

	// make sure the record is persisted
	err := rec.Save()
	if err != nil {
		m.failure = err.Error()
		return false
	}

	// read current value
	old, ok := rec.Get(m.attribute)
	if !ok {
		m.failure = fmt.Sprintf("no attribute %q found", m.attribute)
		return false
	}

	// derive a probe value
	probe, ok := probeValue(old)
	if !ok {
		m.failure = fmt.Sprintf("cannot derive a probe value for attribute %q", m.attribute)
		return false
	}

	// mutate, persist and reload
	rec.Set(m.attribute, probe)
	err = rec.Save()
	if err == nil {
		err = rec.Reload()
	}
	if err != nil {
		m.failure = err.Error()
		return false
	}

	// observe whether the change stuck
	now, _ := rec.Get(m.attribute)
	readonly := reflect.DeepEqual(now, old)

	// revert a leaked mutation
	if !readonly {
		rec.Set(m.attribute, old)
		err = rec.Save()
		if err == nil {
			err = rec.Reload()
		}
		if err != nil {
			m.failure = err.Error()
			return false
		}
		m.failure = fmt.Sprintf("attribute %q changed after save", m.attribute)
	}

	return readonly
}

// Description implements the Matcher interface.
func (m *ReadonlyMatcher) Description() string {
	return "make " + m.attribute + " read-only"
}

// FailureMessage implements the Matcher interface.
func (m *ReadonlyMatcher) FailureMessage() string {
	return failureMessage(m.Description(), m.failure)
}

// NegatedFailureMessage implements the Matcher interface.
func (m *ReadonlyMatcher) NegatedFailureMessage() string {
	return negatedFailureMessage(m.Description())
}

// probeValue derives a value of the same type that differs from the provided
// value. It reports false for unsupported kinds.
func probeValue(value interface{}) (interface{}, bool) {
	if value == nil {
		return nil, false
	}

	v := reflect.ValueOf(value)
	out := reflect.New(v.Type()).Elem()

	switch v.Kind() {
	case reflect.String:
		out.SetString(v.String() + "!")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out.SetInt(v.Int() + 1)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out.SetUint(v.Uint() + 1)
	case reflect.Float32, reflect.Float64:
		out.SetFloat(v.Float() + 1)
	case reflect.Bool:
		out.SetBool(!v.Bool())
	default:
		return nil, false
	}

	return out.Interface(), true
}
