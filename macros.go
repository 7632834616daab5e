package shoulda

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/fatih/color"

	"github.com/evansagge/shoulda/orm"
)

// ShouldBelongTo registers a subtest per target name asserting a belongs-to
// association.
func ShouldBelongTo(t *testing.T, subject interface{}, args ...interface{}) {
	_, rest := ExtractOptions(args)
	for _, name := range targetNames(rest) {
		register(t, BelongTo(name), subject, true)
	}
}

// ShouldHaveOne registers a subtest per target name asserting a has-one
// association. Recognized options: "through", "dependent".
func ShouldHaveOne(t *testing.T, subject interface{}, args ...interface{}) {
	values, rest := ExtractOptions(args, "through", "dependent")
	for _, name := range targetNames(rest) {
		register(t, configureAssociation(HaveOne(name), values), subject, true)
	}
}

// ShouldHaveMany registers a subtest per target name asserting a has-many
// association. Recognized options: "through", "dependent".
func ShouldHaveMany(t *testing.T, subject interface{}, args ...interface{}) {
	values, rest := ExtractOptions(args, "through", "dependent")
	for _, name := range targetNames(rest) {
		register(t, configureAssociation(HaveMany(name), values), subject, true)
	}
}

// ShouldHaveAndBelongToMany registers a subtest per target name asserting a
// has-and-belongs-to-many association.
func ShouldHaveAndBelongToMany(t *testing.T, subject interface{}, args ...interface{}) {
	_, rest := ExtractOptions(args)
	for _, name := range targetNames(rest) {
		register(t, HaveAndBelongToMany(name), subject, true)
	}
}

func configureAssociation(matcher *AssociationMatcher, values []interface{}) *AssociationMatcher {
	if through, ok := values[0].(string); ok && through != "" {
		matcher = matcher.Through(through)
	}
	if dependent, ok := values[1].(string); ok && dependent != "" {
		matcher = matcher.Dependent(dependent)
	}

	return matcher
}

// ShouldHaveColumns registers a subtest per column name asserting the column
// exists with the configured properties. Recognized options: "type", "limit",
// "precision", "scale", "default", "null", "sql_type".
func ShouldHaveColumns(t *testing.T, subject interface{}, args ...interface{}) {
	values, rest := ExtractOptions(args, "type", "limit", "precision", "scale", "default", "null", "sql_type")
	for _, name := range targetNames(rest) {
		matcher := HaveColumn(name)
		if typ, ok := values[0].(string); ok && typ != "" {
			matcher = matcher.OfType(typ)
		}
		if limit, ok := values[1].(int); ok {
			matcher = matcher.WithLimit(limit)
		}
		if precision, ok := values[2].(int); ok {
			matcher = matcher.WithPrecision(precision)
		}
		if scale, ok := values[3].(int); ok {
			matcher = matcher.WithScale(scale)
		}
		if values[4] != nil {
			matcher = matcher.WithDefault(values[4])
		}
		if null, ok := values[5].(bool); ok {
			matcher = matcher.Nullable(null)
		}
		if sqlType, ok := values[6].(string); ok && sqlType != "" {
			matcher = matcher.WithSQLType(sqlType)
		}
		register(t, matcher, subject, true)
	}
}

// ShouldHaveIndex registers a subtest per target asserting an index exists.
// Targets are single column names or ordered []string tuples for composite
// indexes. Recognized options: "unique".
func ShouldHaveIndex(t *testing.T, subject interface{}, args ...interface{}) {
	values, rest := ExtractOptions(args, "unique")
	for _, arg := range rest {
		var matcher *IndexMatcher
		switch target := arg.(type) {
		case string:
			matcher = HaveIndexOn(target)
		case []string:
			matcher = HaveIndexOn(target...)
		default:
			panic(fmt.Sprintf("shoulda: expected a column name or tuple, got %T", arg))
		}
		if unique, ok := values[0].(bool); ok {
			matcher = matcher.Unique(unique)
		}
		register(t, matcher, subject, true)
	}
}

// ShouldAllowMassAssignmentOf registers a subtest per attribute asserting the
// attribute can be set through the mass assignment pathway.
func ShouldAllowMassAssignmentOf(t *testing.T, subject interface{}, args ...interface{}) {
	_, rest := ExtractOptions(args)
	for _, name := range targetNames(rest) {
		register(t, AllowMassAssignmentOf(name), subject, true)
	}
}

// ShouldNotAllowMassAssignmentOf registers a subtest per attribute asserting
// the attribute is protected from mass assignment.
func ShouldNotAllowMassAssignmentOf(t *testing.T, subject interface{}, args ...interface{}) {
	_, rest := ExtractOptions(args)
	for _, name := range targetNames(rest) {
		register(t, AllowMassAssignmentOf(name), subject, false)
	}
}

// ShouldHaveReadonlyAttributes registers a subtest per attribute asserting
// the attribute is read-only after creation.
func ShouldHaveReadonlyAttributes(t *testing.T, subject interface{}, args ...interface{}) {
	_, rest := ExtractOptions(args)
	for _, name := range targetNames(rest) {
		register(t, HaveReadonlyAttribute(name), subject, true)
	}
}

// ShouldHaveScope registers a subtest per scope name asserting the scope is
// registered and produces the expected finder options. Recognized options:
// "with" ([]interface{} of scope arguments) and "finding" (orm.Query).
func ShouldHaveScope(t *testing.T, subject interface{}, args ...interface{}) {
	values, rest := ExtractOptions(args, "with", "finding")
	for _, name := range targetNames(rest) {
		matcher := HaveScope(name)
		if with, ok := values[0].([]interface{}); ok {
			matcher = matcher.With(with...)
		}
		if finding, ok := values[1].(orm.Query); ok {
			matcher = matcher.Finding(finding)
		}
		register(t, matcher, subject, true)
	}
}

var haveIndicesOnce sync.Once
var haveIndexOnOnce sync.Once

// ShouldHaveIndices forwards to ShouldHaveIndex.
//
// Deprecated: use ShouldHaveIndex.
func ShouldHaveIndices(t *testing.T, subject interface{}, args ...interface{}) {
	deprecate(&haveIndicesOnce, "ShouldHaveIndices", "ShouldHaveIndex")
	ShouldHaveIndex(t, subject, args...)
}

// ShouldHaveIndexOn forwards to ShouldHaveIndex.
//
// Deprecated: use ShouldHaveIndex.
func ShouldHaveIndexOn(t *testing.T, subject interface{}, args ...interface{}) {
	deprecate(&haveIndexOnOnce, "ShouldHaveIndexOn", "ShouldHaveIndex")
	ShouldHaveIndex(t, subject, args...)
}

func deprecate(once *sync.Once, name, replacement string) {
	once.Do(func() {
		_, _ = color.New(color.FgYellow).Fprintf(os.Stderr, "shoulda: %s is deprecated, use %s\n", name, replacement)
	})
}

// register creates one generated subtest named after the matcher description
// whose body runs the accept respectively reject assertion.
func register(t *testing.T, matcher Matcher, subject interface{}, accept bool) {
	name := "should "
	if !accept {
		name = "should not "
	}

	t.Run(name+matcher.Description(), func(t *testing.T) {
		if accept {
			AssertAccepts(t, matcher, subject)
		} else {
			AssertRejects(t, matcher, subject)
		}
	})
}
