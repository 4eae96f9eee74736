// Package catalog provides the builtin classical functions the demo
// programs offer. The simulation core only consumes predicates; which
// functions get tried is the caller's concern.
package catalog

import (
	"math/bits"

	"qdjsim"
)

// Entry is one selectable classical function.
type Entry struct {
	Name    string
	Summary string
	Kind    string // "constant" or "balanced", the expected verdict
	Make    func(n int) qdjsim.Predicate
}

var entries = []Entry{
	{
		Name:    "const0",
		Summary: "f(x) = 0 for every input",
		Kind:    "constant",
		Make: func(int) qdjsim.Predicate {
			return func(int) (int, error) { return 0, nil }
		},
	},
	{
		Name:    "const1",
		Summary: "f(x) = 1 for every input",
		Kind:    "constant",
		Make: func(int) qdjsim.Predicate {
			return func(int) (int, error) { return 1, nil }
		},
	},
	{
		Name:    "parity",
		Summary: "f(x) = 1 when x has an odd number of set bits",
		Kind:    "balanced",
		Make: func(int) qdjsim.Predicate {
			return func(x int) (int, error) { return bits.OnesCount(uint(x)) % 2, nil }
		},
	},
	{
		Name:    "bit0",
		Summary: "f(x) = lowest bit of x",
		Kind:    "balanced",
		Make: func(int) qdjsim.Predicate {
			return func(x int) (int, error) { return x & 1, nil }
		},
	},
	{
		Name:    "topbit",
		Summary: "f(x) = highest input bit of x",
		Kind:    "balanced",
		Make: func(n int) qdjsim.Predicate {
			return func(x int) (int, error) { return (x >> (n - 1)) & 1, nil }
		},
	},
}

// Entries returns the builtin functions in menu order.
func Entries() []Entry {
	return entries
}

// Lookup finds a builtin function by name.
func Lookup(name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the builtin function names in menu order.
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
