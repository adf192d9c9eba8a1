package domain

import (
	"slices"
	"strings"
)

// Tags keeps the order the server or the caller gave.
type Tags []string

func (t Tags) String() string {
	return strings.Join(t, ", ")
}

// Equal compares tags as a multiset.
func (t Tags) Equal(other Tags) bool {
	if len(t) != len(other) {
		return false
	}
	a := slices.Clone(t)
	b := slices.Clone(other)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// ParseTags splits a comma separated list, dropping blanks.
func ParseTags(joined string) Tags {
	tags := Tags{}
	for _, part := range strings.Split(joined, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// OrEmpty never returns nil so the tags serialize as a JSON array.
func (t Tags) OrEmpty() Tags {
	if t == nil {
		return Tags{}
	}
	return t
}
