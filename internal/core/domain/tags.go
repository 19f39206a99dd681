package domain

import "strings"

// TagSeparator joins a TagSet into the scalar form required by the
// slide index metadata contract.
const TagSeparator = ", "

// TagGeneral is the fallback label for text matching no keyword group.
const TagGeneral = "General"

// TagSet is an ordered, duplicate-free set of topic labels.
//
// The set is the domain representation; the slide index stores only
// scalar metadata, so a TagSet crosses the storage boundary as the
// joined string form and is parsed back on the way out. Membership
// tests operate on the parsed set, never on the joined string.
type TagSet []string

// NewTagSet builds a TagSet from labels, dropping duplicates while
// preserving first-seen order.
func NewTagSet(labels ...string) TagSet {
	set := make(TagSet, 0, len(labels))
	for _, l := range labels {
		if l == "" || set.Contains(l) {
			continue
		}
		set = append(set, l)
	}
	return set
}

// ParseTagSet parses the joined string form produced by String.
// An empty input yields an empty set.
func ParseTagSet(s string) TagSet {
	if s == "" {
		return TagSet{}
	}
	parts := strings.Split(s, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		labels = append(labels, strings.TrimSpace(p))
	}
	return NewTagSet(labels...)
}

// String serializes the set to its scalar storage form.
func (t TagSet) String() string {
	return strings.Join(t, TagSeparator)
}

// Contains reports whether label is a member of the set.
func (t TagSet) Contains(label string) bool {
	for _, l := range t {
		if l == label {
			return true
		}
	}
	return false
}
