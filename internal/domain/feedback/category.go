package feedback

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryBug        Category = "bug"
	CategorySuggestion Category = "suggestion"
	CategoryCompliment Category = "compliment"
	CategoryQuestion   Category = "question"
	CategoryOther      Category = "other"
)

var categoryLabels = map[Category]string{
	CategoryBug:        "Bug Report",
	CategorySuggestion: "Suggestion",
	CategoryCompliment: "Compliment",
	CategoryQuestion:   "Question",
	CategoryOther:      "Other",
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{CategoryBug, CategorySuggestion, CategoryCompliment, CategoryQuestion, CategoryOther}
}

// ParseCategory accepts a category value; empty input yields "" with no error.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return "", nil
	}
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

// Label is the human-readable name; unknown values render as-is.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
