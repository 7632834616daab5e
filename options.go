package shoulda

import (
	"fmt"
	"sort"
	"strings"

	"dario.cat/mergo"
)

// Options configures a matcher macro. It is supplied as the last argument of
// a macro call, after the target names.
type Options map[string]interface{}

// ExtractOptions strips a trailing Options value off the provided argument
// list and returns the values of the recognized option keys along with the
// remaining target arguments. Values are returned in declared key order with
// nil standing in for absent keys.
//
// ExtractOptions panics if the options contain an unrecognized key. This
// guards against silent typos in test declarations.
func ExtractOptions(args []interface{}, keys ...string) ([]interface{}, []interface{}) {
	// strip trailing options
	opts := Options{}
	if n := len(args); n > 0 {
		if last, ok := args[n-1].(Options); ok {
			opts = last
			args = args[:n-1]
		}
	}

	// check for unrecognized keys
	var unknown []string
	for key := range opts {
		var found bool
		for _, recognized := range keys {
			if key == recognized {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, fmt.Sprintf("%q", key))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		panic("shoulda: unrecognized option key(s): " + strings.Join(unknown, ", "))
	}

	// merge over neutral defaults
	merged := Options{}
	for _, key := range keys {
		merged[key] = nil
	}
	err := mergo.Merge(&merged, opts, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue)
	if err != nil {
		panic(err)
	}

	// collect values in declared order
	values := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		values = append(values, merged[key])
	}

	return values, args
}

// targetNames converts the remaining arguments of a macro call to target
// name strings. It panics on any other argument type.
func targetNames(args []interface{}) []string {
	names := make([]string, 0, len(args))
	for _, arg := range args {
		name, ok := arg.(string)
		if !ok {
			panic(fmt.Sprintf("shoulda: expected a target name, got %T", arg))
		}
		names = append(names, name)
	}

	return names
}
