package feedback

import "testing"

func sampleRecords() []Record {
	return []Record{
		{ID: "1", Name: "Bob Stone", Message: "Login broken", Category: CategoryBug},
		{ID: "2", Email: "BOBBY@example.com", Message: "Love it", Category: CategoryCompliment},
		{ID: "3", Name: "Alice", Message: "Ask bob about pricing", Category: CategoryQuestion},
		{ID: "4", Name: "Carol", Email: "carol@example.com", Message: "Dark mode please", Category: CategorySuggestion},
	}
}

func ids(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterApply(t *testing.T) {
	testCases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "empty matches all", filter: Filter{}, want: []string{"1", "2", "3", "4"}},
		{name: "search any field case-insensitive", filter: Filter{Search: "bob"}, want: []string{"1", "2", "3"}},
		{name: "category only", filter: Filter{Category: CategorySuggestion}, want: []string{"4"}},
		{name: "search and category", filter: Filter{Search: "BOB", Category: CategoryQuestion}, want: []string{"3"}},
		{name: "no match", filter: Filter{Search: "zebra"}, want: []string{}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := ids(testCase.filter.Apply(sampleRecords()))
			if len(got) != len(testCase.want) {
				t.Fatalf("Apply() = %v, want %v", got, testCase.want)
			}
			for i := range got {
				if got[i] != testCase.want[i] {
					t.Fatalf("Apply() = %v, want %v", got, testCase.want)
				}
			}
		})
	}
}

func TestFilterIsZero(t *testing.T) {
	if !(Filter{}).IsZero() {
		t.Fatalf("empty filter should be zero")
	}
	if (Filter{Category: CategoryBug}).IsZero() {
		t.Fatalf("category filter should not be zero")
	}
}
