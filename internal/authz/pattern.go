package authz

import (
	"fmt"
	"strings"
)

// segment is one compiled piece of a route pattern. Parameter segments match
// any path segment; literal segments must match exactly.
type segment struct {
	literal string
	param   bool
}

// template is a route pattern compiled once at table construction.
type template struct {
	raw      string
	segments []segment
	literals int
}

func compileTemplate(raw string) (template, error) {
	parts := splitPath(raw)
	t := template{raw: raw, segments: make([]segment, 0, len(parts))}
	for _, part := range parts {
		if part == "" {
			return template{}, fmt.Errorf(errRuleSegmentEmptyFmt, raw)
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			if len(part) == 2 {
				return template{}, fmt.Errorf(errRuleParamEmptyFmt, raw)
			}
			t.segments = append(t.segments, segment{param: true})
			continue
		}
		t.segments = append(t.segments, segment{literal: part})
		t.literals++
	}
	return t, nil
}

func (t template) match(parts []string) bool {
	if len(parts) != len(t.segments) {
		return false
	}
	for i, seg := range t.segments {
		if !seg.param && seg.literal != parts[i] {
			return false
		}
	}
	return true
}

// overlaps reports whether some path could match both templates. Templates of
// equal length only diverge when they disagree on a literal position.
func (t template) overlaps(other template) bool {
	if len(t.segments) != len(other.segments) {
		return false
	}
	for i, seg := range t.segments {
		o := other.segments[i]
		if !seg.param && !o.param && seg.literal != o.literal {
			return false
		}
	}
	return true
}

// splitPath normalizes a request path or pattern into its segments by
// trimming separators and splitting.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
