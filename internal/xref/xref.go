// Package xref holds the consistency set algebra: which figures exist but
// are never embedded, which references are declared but never cited, and
// which are cited but never declared. The operations are pure; building the
// input sets from project files is the caller's concern.
package xref

import "sort"

// Set is an unordered collection of string keys.
type Set map[string]struct{}

// NewSet builds a set from keys.
func NewSet(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts a key.
func (s Set) Add(key string) {
	s[key] = struct{}{}
}

// Has reports membership.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of keys.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the keys in ascending order. Display code sorts here;
// the sets themselves are unordered.
func (s Set) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Intersect returns the keys present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for k := range s {
		if other.Has(k) {
			out.Add(k)
		}
	}
	return out
}

// Diff returns the keys of s not present in other.
func (s Set) Diff(other Set) Set {
	out := make(Set)
	for k := range s {
		if !other.Has(k) {
			out.Add(k)
		}
	}
	return out
}

// UnusedFigures returns the figures available on disk that no source file
// embeds.
func UnusedFigures(avail, used Set) Set {
	return avail.Diff(used)
}

// UnusedReferences returns the declared references that are never cited.
func UnusedReferences(declared, cited Set) Set {
	return declared.Diff(declared.Intersect(cited))
}

// UndefinedReferences returns the cited keys that no declaration backs.
func UndefinedReferences(declared, cited Set) Set {
	return cited.Diff(declared.Intersect(cited))
}
