package shoulda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestExtractOptions(t *testing.T) {
	values, rest := ExtractOptions([]interface{}{"dogs", "toys", Options{
		"through": "owners",
	}}, "through", "dependent")
	assert.Equal(t, []interface{}{"owners", nil}, values)
	assert.Equal(t, []string{"dogs", "toys"}, targetNames(rest))

	// absent options map
	values, rest = ExtractOptions([]interface{}{"dogs"}, "through", "dependent")
	assert.Equal(t, []interface{}{nil, nil}, values)
	assert.Len(t, rest, 1)

	// empty values are preserved
	values, _ = ExtractOptions([]interface{}{Options{
		"null": false,
	}}, "null")
	assert.Equal(t, []interface{}{false}, values)
}

func TestExtractOptionsUnrecognizedKey(t *testing.T) {
	assert.PanicsWithValue(t, `shoulda: unrecognized option key(s): "trough"`, func() {
		ExtractOptions([]interface{}{"dogs", Options{
			"trough": "owners",
		}}, "through", "dependent")
	})
}

func TestTargetNames(t *testing.T) {
	assert.Panics(t, func() {
		targetNames([]interface{}{42})
	})
}

func TestExtractOptionsProperties(t *testing.T) {
	keys := []string{"alpha", "beta", "gamma"}

	rapid.Check(t, func(t *rapid.T) {
		// draw a subset of recognized keys with values
		opts := Options{}
		for _, key := range keys {
			if rapid.Bool().Draw(t, "use-"+key) {
				opts[key] = rapid.String().Draw(t, "value-"+key)
			}
		}

		// draw target names
		names := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 0, 4).Draw(t, "names")

		// build argument list
		args := make([]interface{}, 0, len(names)+1)
		for _, name := range names {
			args = append(args, name)
		}
		args = append(args, opts)

		// extraction succeeds and returns values in declared order
		values, rest := ExtractOptions(args, keys...)
		for i, key := range keys {
			if value, ok := opts[key]; ok {
				if value != nil && value != "" {
					assert.Equal(t, value, values[i])
				}
			} else {
				assert.Nil(t, values[i])
			}
		}
		assert.Len(t, rest, len(names))
		for i, name := range targetNames(rest) {
			assert.Equal(t, names[i], name)
		}
	})

	rapid.Check(t, func(t *rapid.T) {
		// any unrecognized key fails extraction
		unknown := rapid.StringMatching(`[a-z]{1,8}`).Filter(func(s string) bool {
			for _, key := range keys {
				if s == key {
					return false
				}
			}
			return true
		}).Draw(t, "unknown")

		assert.Panics(t, func() {
			ExtractOptions([]interface{}{Options{unknown: 1}}, keys...)
		})
	})
}
