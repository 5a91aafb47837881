// Package normalize holds the small numeric and string helpers shared by the
// transform, insight and evidence engines.
package normalize

import (
	"math"
	"slices"
	"strings"
	"time"
)

const maxSlugLength = 80

// Clamp bounds v to [lo, hi]. NaN passes through unchanged.
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Round2 rounds to two decimals, halves rounding up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Slug lower-cases v, collapses every run of characters outside [a-z0-9]
// into a single underscore and trims underscores from both ends. The result
// is at most 80 characters long.
func Slug(v string) string {
	lower := strings.ToLower(v)
	var b strings.Builder
	b.Grow(len(lower))
	pendingSep := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteByte(c)
			continue
		}
		pendingSep = true
	}
	out := b.String()
	if len(out) > maxSlugLength {
		out = strings.TrimRight(out[:maxSlugLength], "_")
	}
	return out
}

// Dedupe drops zero values and repeated values, keeping first occurrences
// in order.
func Dedupe[T comparable](values []T) []T {
	var zero T
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if v == zero {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseTime parses ISO-8601 timestamps: date-only, year-month and year
// forms, date-times with minute, second or fractional precision, a "T" or
// space separator, and a "Z", "+hh:mm" or "+hhmm" offset. Values without an
// offset are read as UTC. Empty or unparsable input yields the Unix epoch.
func ParseTime(v string) time.Time {
	if t, ok := parseTime(v); ok {
		return t
	}
	return time.Unix(0, 0).UTC()
}

// ValidTime reports whether v is non-empty and in one of the accepted
// layouts.
func ValidTime(v string) bool {
	_, ok := parseTime(v)
	return ok
}

func parseTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByTimeDesc returns a copy of items ordered newest first by the time
// string key returns. Items with equal times keep their relative order.
func SortByTimeDesc[T any](items []T, key func(T) string) []T {
	type keyed struct {
		item T
		at   time.Time
	}
	tmp := make([]keyed, len(items))
	for i, item := range items {
		tmp[i] = keyed{item: item, at: ParseTime(key(item))}
	}
	slices.SortStableFunc(tmp, func(a, b keyed) int {
		return b.at.Compare(a.at)
	})
	out := make([]T, len(tmp))
	for i, k := range tmp {
		out[i] = k.item
	}
	return out
}

// FormatTime renders t the way timestamps are stored on derived records.
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Intersect returns the members of a that also appear in b, in a's order.
func Intersect[T comparable](a, b []T) []T {
	members := make(map[T]struct{}, len(b))
	for _, v := range b {
		members[v] = struct{}{}
	}
	out := make([]T, 0)
	for _, v := range a {
		if _, ok := members[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
