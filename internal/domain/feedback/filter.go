package feedback

import "strings"

// Filter selects records by free-text search and category. Zero values match everything.
type Filter struct {
	Search   string
	Category Category
}

func (f Filter) IsZero() bool {
	return f.Search == "" && f.Category == ""
}

// Matches applies a case-insensitive substring search over message, name
// and email, combined with an exact category match.
func (f Filter) Matches(r Record) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}

	term := strings.ToLower(f.Search)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Message), term) ||
		strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.Email), term)
}

// Apply returns matching records in their original order.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
