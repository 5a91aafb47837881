package normalize

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	t.Run("inside range", func(t *testing.T) {
		if got := Clamp(0.5, 0.1, 0.9); got != 0.5 {
			t.Fatalf("expected 0.5, got %v", got)
		}
	})

	t.Run("below and above", func(t *testing.T) {
		if got := Clamp(-1, 0.1, 0.9); got != 0.1 {
			t.Fatalf("expected 0.1, got %v", got)
		}
		if got := Clamp(3, 0.1, 0.9); got != 0.9 {
			t.Fatalf("expected 0.9, got %v", got)
		}
	})

	t.Run("nan propagates", func(t *testing.T) {
		if got := Clamp(math.NaN(), 0, 1); !math.IsNaN(got) {
			t.Fatalf("expected NaN, got %v", got)
		}
	})
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		0.774:  0.77,
		0.776:  0.78,
		0.3333: 0.33,
		1:      1,
	}
	for in, want := range cases {
		if got := Round2(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "event type", input: "PURCHASE_OBSERVED", expected: "purchase_observed"},
		{name: "spaces and punctuation", input: "  Acme, Inc. -- West  ", expected: "acme_inc_west"},
		{name: "leading separators", input: "__x__", expected: "x"},
		{name: "only separators", input: "!!!", expected: ""},
		{name: "non ascii collapses", input: "Café Nord", expected: "caf_nord"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.expected {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugProperties(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9_]{0,80}$`)
	inputs := []string{
		"",
		"Hello World",
		strings.Repeat("ab ", 60),
		strings.Repeat("a", 79) + " b",
		strings.Repeat("x", 200),
		"__Mixed--CASE__input__",
	}
	for _, input := range inputs {
		got := Slug(input)
		if !pattern.MatchString(got) {
			t.Fatalf("Slug(%q) = %q does not match %s", input, got, pattern)
		}
		if strings.HasPrefix(got, "_") || strings.HasSuffix(got, "_") {
			t.Fatalf("Slug(%q) = %q has edge underscore", input, got)
		}
		if again := Slug(got); again != got {
			t.Fatalf("Slug not idempotent: %q -> %q", got, again)
		}
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"b", "", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if out := Dedupe[string](nil); len(out) != 0 {
		t.Fatalf("expected empty, got %v", out)
	}
}

func TestSortByTimeDesc(t *testing.T) {
	type item struct {
		id string
		at string
	}
	items := []item{
		{id: "a", at: "2024-01-01T00:00:00Z"},
		{id: "b", at: "2024-03-01T00:00:00Z"},
		{id: "c", at: "not a date"},
		{id: "d", at: "2024-01-01T00:00:00Z"},
		{id: "e", at: ""},
	}

	sorted := SortByTimeDesc(items, func(i item) string { return i.at })

	var ids []string
	for _, i := range sorted {
		ids = append(ids, i.id)
	}
	want := []string{"b", "a", "d", "c", "e"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	if items[0].id != "a" {
		t.Fatalf("input slice was reordered")
	}
}

func TestParseTimeFallback(t *testing.T) {
	if got := ParseTime("garbage"); got.Unix() != 0 {
		t.Fatalf("expected epoch, got %v", got)
	}
	if got := ParseTime("2024-05-06"); got.Year() != 2024 || got.Month() != 5 {
		t.Fatalf("unexpected parse: %v", got)
	}
}

func TestValidTime(t *testing.T) {
	for _, v := range []string{"2024-03-01T09:00:00Z", "2024-03-01 09:00:00", "1970-01-01T00:00:00Z"} {
		if !ValidTime(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}
	for _, v := range []string{"", "  ", "yesterday", "2024-13-01"} {
		if ValidTime(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func TestParseTimeLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01T10:00:00.250Z", time.Date(2024, 3, 1, 10, 0, 0, 250e6, time.UTC)},
		{"2024-03-01T10:00Z", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:00+02:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:00:00+0200", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-03-01 10:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-03", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := ParseTime(tt.in); !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSortByTimeDescMinutePrecision(t *testing.T) {
	items := []string{"2024-03-01T09:00:00Z", "2024-03-01T10:00Z", "garbage"}
	got := SortByTimeDesc(items, func(s string) string { return s })
	want := []string{"2024-03-01T10:00Z", "2024-03-01T09:00:00Z", "garbage"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestIntersect(t *testing.T) {
	got := Intersect([]string{"c", "a", "b"}, []string{"b", "c", "z"})
	want := []string{"c", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := Intersect([]string{"a"}, nil); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}
