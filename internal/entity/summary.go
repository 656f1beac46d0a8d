package entity

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Key identifies a course by subject and number. Labels are not part of identity.
type Key struct {
	Subject string
	Number  string
}

// Summary represents the identity and display record of a course.
type Summary struct {
	Subject string `json:"subject" validate:"required"`
	Number  string `json:"number" validate:"required"`
	Label   string `json:"label"`
}

func (s Summary) Key() Key {
	return Key{Subject: s.Subject, Number: s.Number}
}

// RatingPath returns the rating path for this summary, e.g. /rating/CS/124.
func (s Summary) RatingPath() string {
	return fmt.Sprintf("/rating/%s/%s", s.Subject, s.Number)
}

// CoursePath returns the course path for this summary, e.g. /course/CS/124/.
func (s Summary) CoursePath() string {
	return fmt.Sprintf("/course/%s/%s/", s.Subject, s.Number)
}

func (s Summary) String() string {
	return s.Subject + " " + s.Number + ": " + s.Label
}

// CompareSummaries orders by number, then subject.
func CompareSummaries(a, b Summary) int {
	if c := cmp.Compare(a.Number, b.Number); c != 0 {
		return c
	}
	return cmp.Compare(a.Subject, b.Subject)
}

// SortSummaries sorts list in place using CompareSummaries.
func SortSummaries(list []Summary) {
	slices.SortStableFunc(list, CompareSummaries)
}

// FilterSummaries returns the summaries whose rendered form contains text,
// ignoring case and surrounding whitespace. Earlier matches come first;
// equal match positions keep the natural summary order.
func FilterSummaries(list []Summary, text string) []Summary {
	needle := strings.ToLower(strings.TrimSpace(text))

	out := make([]Summary, 0, len(list))
	for _, s := range list {
		if strings.Contains(strings.ToLower(s.String()), needle) {
			out = append(out, s)
		}
	}
	SortSummaries(out)
	slices.SortStableFunc(out, func(a, b Summary) int {
		return cmp.Compare(
			strings.Index(strings.ToLower(a.String()), needle),
			strings.Index(strings.ToLower(b.String()), needle),
		)
	})
	return out
}
