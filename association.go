package shoulda

import (
	"fmt"
	"strings"

	"github.com/evansagge/shoulda/orm"
)

// interface assertion
var _ Matcher = (*AssociationMatcher)(nil)

// An AssociationMatcher verifies that a named association is declared with
// the expected kind and options and that the foreign key respectively join
// table columns backing it actually exist in the schema.
type AssociationMatcher struct {
	kind      orm.Kind
	name      string
	through   string
	dependent string
	failure   string
}

// BelongTo returns a matcher for a belongs-to association.
func BelongTo(name string) *AssociationMatcher {
	return &AssociationMatcher{kind: orm.BelongsToKind, name: name}
}

// HaveOne returns a matcher for a has-one association.
func HaveOne(name string) *AssociationMatcher {
	return &AssociationMatcher{kind: orm.HasOneKind, name: name}
}

// HaveMany returns a matcher for a has-many association.
func HaveMany(name string) *AssociationMatcher {
	return &AssociationMatcher{kind: orm.HasManyKind, name: name}
}

// HaveAndBelongToMany returns a matcher for a has-and-belongs-to-many
// association.
func HaveAndBelongToMany(name string) *AssociationMatcher {
	return &AssociationMatcher{kind: orm.HABTMKind, name: name}
}

// Through returns an updated matcher that additionally requires the
// association to traverse the named through association.
func (m *AssociationMatcher) Through(name string) *AssociationMatcher {
	n := *m
	n.through = name
	return &n
}

// Dependent returns an updated matcher that additionally requires the
// association to carry the provided dependent mode.
func (m *AssociationMatcher) Dependent(mode string) *AssociationMatcher {
	n := *m
	n.dependent = mode
	return &n
}

// Matches implements the Matcher interface.
func (m *AssociationMatcher) Matches(subject interface{}) bool {
	// get subject
	sub, ok := subject.(orm.Subject)
	if !ok {
		m.failure = "subject does not provide model metadata"
		return false
	}

	// look up reflection
	ref := sub.Reflect(m.name)
	if ref == nil {
		m.failure = fmt.Sprintf("no association %q declared", m.name)
		return false
	}

	// compare kind
	if ref.Kind != m.kind {
		m.failure = fmt.Sprintf("association %q is declared as %s", m.name, ref.Kind)
		return false
	}

	// compare through association, unset means don't care
	if m.through != "" && ref.Through != m.through {
		m.failure = fmt.Sprintf("association %q goes through %q", m.name, ref.Through)
		return false
	}

	// compare dependent mode, unset means don't care
	if m.dependent != "" && ref.Dependent != m.dependent {
		m.failure = fmt.Sprintf("association %q has dependent mode %q", m.name, ref.Dependent)
		return false
	}

	return m.matchColumns(sub, ref)
}

func (m *AssociationMatcher) matchColumns(sub orm.Subject, ref *orm.Reflection) bool {
	switch ref.Kind {
	case orm.BelongsToKind:
		// the foreign key lives on the own table
		if sub.Column(ref.ForeignKey) == nil {
			m.failure = fmt.Sprintf("missing column %q", ref.ForeignKey)
			return false
		}

		// polymorphic associations also carry a type column
		if ref.Polymorphic {
			typeColumn := ref.Name + "_type"
			if sub.Column(typeColumn) == nil {
				m.failure = fmt.Sprintf("missing column %q", typeColumn)
				return false
			}
		}
	case orm.HasOneKind, orm.HasManyKind:
		// through associations have no own foreign key
		if ref.Through != "" {
			return true
		}

		// the foreign key lives on the target table
		if sub.ColumnIn(ref.Target, ref.ForeignKey) == nil {
			m.failure = fmt.Sprintf("missing column %q on table %q", ref.ForeignKey, ref.Target)
			return false
		}
	case orm.HABTMKind:
		// both foreign keys live on the join table
		for _, key := range []string{ref.ForeignKey, ref.TargetKey} {
			if sub.ColumnIn(ref.JoinTable, key) == nil {
				m.failure = fmt.Sprintf("missing column %q on join table %q", key, ref.JoinTable)
				return false
			}
		}
	}

	return true
}

// Description implements the Matcher interface.
func (m *AssociationMatcher) Description() string {
	var b strings.Builder
	b.WriteString(kindPhrase(m.kind))
	b.WriteString(" ")
	b.WriteString(m.name)
	if m.through != "" {
		b.WriteString(" through ")
		b.WriteString(m.through)
	}
	if m.dependent != "" {
		b.WriteString(" dependent ")
		b.WriteString(m.dependent)
	}

	return b.String()
}

// FailureMessage implements the Matcher interface.
func (m *AssociationMatcher) FailureMessage() string {
	return failureMessage(m.Description(), m.failure)
}

// NegatedFailureMessage implements the Matcher interface.
func (m *AssociationMatcher) NegatedFailureMessage() string {
	return negatedFailureMessage(m.Description())
}

// kindPhrase renders an association kind in its infinitive form so that
// descriptions read as "have many dogs" or "belong to owner".
func kindPhrase(kind orm.Kind) string {
	switch kind {
	case orm.BelongsToKind:
		return "belong to"
	case orm.HasOneKind:
		return "have one"
	case orm.HasManyKind:
		return "have many"
	case orm.HABTMKind:
		return "have and belong to many"
	}

	return string(kind)
}
