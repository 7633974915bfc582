package m3uparser

import (
	"path"
	"strings"
)

// Predicate - Decides whether an entry is kept.
type Predicate func(Entry) bool

// ChinaChannels keeps CCTV channels and the provincial satellite channels (卫视).
var ChinaChannels = Any(NameHasPrefix("CCTV"), NameContains("卫视"))

// Filter - Entries for which keep returns true, in input order.
// A nil predicate keeps everything.
func Filter(entries []Entry, keep Predicate) []Entry {
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if keep == nil || keep(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// NameHasPrefix - Name starts with prefix.
func NameHasPrefix(prefix string) Predicate {
	return func(e Entry) bool {
		return strings.HasPrefix(e.Name, prefix)
	}
}

// NameContains - Name contains substr.
func NameContains(substr string) Predicate {
	return func(e Entry) bool {
		return strings.Contains(e.Name, substr)
	}
}

// GroupContains - group-title contains substr, ignoring case.
func GroupContains(substr string) Predicate {
	substr = strings.ToLower(substr)
	return func(e Entry) bool {
		return strings.Contains(strings.ToLower(e.Group()), substr)
	}
}

// URLHasExtension - URL path ends with one of the given extensions ("m3u8" or ".m3u8").
func URLHasExtension(extensions ...string) Predicate {
	return func(e Entry) bool {
		u := e.URL
		if i := strings.IndexAny(u, "?#"); i >= 0 {
			u = u[:i]
		}
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(u), "."))
		if ext == "" {
			return false
		}
		for _, want := range extensions {
			if strings.ToLower(strings.TrimPrefix(want, ".")) == ext {
				return true
			}
		}
		return false
	}
}

// Any - True when at least one predicate is true. Any() is always false.
func Any(preds ...Predicate) Predicate {
	return func(e Entry) bool {
		for _, p := range preds {
			if p(e) {
				return true
			}
		}
		return false
	}
}

// All - True when every predicate is true. All() is always true.
func All(preds ...Predicate) Predicate {
	return func(e Entry) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Not - Negates p.
func Not(p Predicate) Predicate {
	return func(e Entry) bool {
		return !p(e)
	}
}
