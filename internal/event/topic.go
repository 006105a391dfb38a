package event

import "strings"

// Topic identifies an event stream using dot-separated segments, for
// example "cursor.moved" or "preview.shown".
//
// Subscription patterns may use wildcards: "*" matches exactly one
// segment, "**" matches the remainder of the topic.
type Topic string

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// IsValid reports whether the topic is non-empty and has no empty
// segments.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range strings.Split(string(t), ".") {
		if seg == "" {
			return false
		}
	}
	return true
}

// Match reports whether a concrete topic matches a pattern.
func Match(pattern, t Topic) bool {
	pp := strings.Split(string(pattern), ".")
	tp := strings.Split(string(t), ".")

	for i, seg := range pp {
		if seg == "**" {
			return true
		}
		if i >= len(tp) {
			return false
		}
		if seg != "*" && seg != tp[i] {
			return false
		}
	}
	return len(pp) == len(tp)
}
