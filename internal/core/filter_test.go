// internal/core/filter_test.go
package core

import (
	"testing"
	"time"

	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
)

func titles(projects []domain.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

func equalTitles(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleProjects() []domain.Project {
	return []domain.Project{
		{
			Title:       "Bathroom",
			Description: "Replace tiles and shower",
			Category:    "plumbing",
			Budget:      domain.Budget{Min: 2000, Max: 4000},
			Location:    domain.Location{City: "Gent", Country: "Belgium"},
			Deadline:    day("2030-03-01"),
		},
		{
			Title:       "Garden",
			Description: "New fence and lawn",
			Category:    "gardening",
			Budget:      domain.Budget{Min: 6000, Max: 9000},
			Location:    domain.Location{City: "Utrecht", Country: "Netherlands"},
			Deadline:    day("2030-05-15"),
		},
		{
			Title:       "Kitchen lights",
			Description: "Install LED spots in the BATHROOM and kitchen",
			Category:    "Electrical",
			Budget:      domain.Budget{Min: 500, Max: 800},
			Location:    domain.Location{City: "Antwerpen", Country: "Belgium"},
			Deadline:    day("2030-01-10"),
		},
	}
}

func TestFilter(t *testing.T) {
	testCases := []struct {
		name     string
		criteria FilterCriteria
		want     []string
	}{
		{"no criteria keeps order", FilterCriteria{}, []string{"Bathroom", "Garden", "Kitchen lights"}},
		{"search title case-insensitive", FilterCriteria{Search: "gARDen"}, []string{"Garden"}},
		{"search hits description alone", FilterCriteria{Search: "bathroom"}, []string{"Bathroom", "Kitchen lights"}},
		{"category case-insensitive", FilterCriteria{Category: "electrical"}, []string{"Kitchen lights"}},
		{"location matches country", FilterCriteria{Location: "belgium"}, []string{"Bathroom", "Kitchen lights"}},
		{"location ignores city", FilterCriteria{Location: "Gent"}, []string{}},
		{"bounded budget", FilterCriteria{Budget: "0-5000"}, []string{"Bathroom", "Kitchen lights"}},
		{"bounded budget inclusive", FilterCriteria{Budget: "2000-6000"}, []string{"Bathroom", "Garden"}},
		{"open-ended budget", FilterCriteria{Budget: "5000+"}, []string{"Garden"}},
		{"malformed budget matches nothing", FilterCriteria{Budget: "cheap"}, []string{}},
		{"date inclusive", FilterCriteria{Date: day("2030-03-01")}, []string{"Bathroom", "Garden"}},
		{"combined", FilterCriteria{Location: "Belgium", Budget: "1000-5000", Search: "tiles"}, []string{"Bathroom"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := titles(Filter(sampleProjects(), tc.criteria))
			if !equalTitles(got, tc.want) {
				t.Errorf("Filter(%+v) = %v; want %v", tc.criteria, got, tc.want)
			}
		})
	}
}

func TestFilterBudgetUsesMinimumOnly(t *testing.T) {
	projects := []domain.Project{
		{Title: "Bathroom", Budget: domain.Budget{Min: 2000}},
		{Title: "Garden", Budget: domain.Budget{Min: 6000}},
	}

	if got := titles(Filter(projects, FilterCriteria{Budget: "0-5000"})); !equalTitles(got, []string{"Bathroom"}) {
		t.Errorf("0-5000 = %v; want [Bathroom]", got)
	}
	if got := titles(Filter(projects, FilterCriteria{Budget: "5000+"})); !equalTitles(got, []string{"Garden"}) {
		t.Errorf("5000+ = %v; want [Garden]", got)
	}
	if got := titles(Filter(projects, FilterCriteria{})); !equalTitles(got, []string{"Bathroom", "Garden"}) {
		t.Errorf("empty = %v; want [Bathroom Garden]", got)
	}

	// A max far above the range does not matter, only budget.min is compared.
	wide := []domain.Project{{Title: "Roof", Budget: domain.Budget{Min: 1000, Max: 50000}}}
	if got := titles(Filter(wide, FilterCriteria{Budget: "0-5000"})); !equalTitles(got, []string{"Roof"}) {
		t.Errorf("wide budget = %v; want [Roof]", got)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	c := FilterCriteria{Location: "Belgium", Budget: "0-5000"}
	once := Filter(sampleProjects(), c)
	twice := Filter(once, c)
	if !equalTitles(titles(once), titles(twice)) {
		t.Errorf("filtering filtered data changed the result: %v vs %v", titles(once), titles(twice))
	}
}

func TestFilterPassesCountersThrough(t *testing.T) {
	remaining := 3
	projects := []domain.Project{{Title: "A", AlreadyApplied: true, ContactsRemaining: &remaining}}
	got := Filter(projects, FilterCriteria{})
	if !got[0].AlreadyApplied || got[0].ContactsRemaining == nil || *got[0].ContactsRemaining != 3 {
		t.Errorf("counters were not passed through: %+v", got[0])
	}
}
