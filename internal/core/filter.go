// internal/core/filter.go
package core

import (
	"strings"

	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
)

// Predicate decides whether a project stays in the filtered view.
type Predicate func(p *domain.Project) bool

// Predicates builds the AND-combined predicates for the active criteria.
// Inactive criteria contribute nothing. A malformed budget token yields a
// predicate that rejects every project.
func (c FilterCriteria) Predicates() []Predicate {
	var preds []Predicate

	if c.Search != "" {
		q := strings.ToLower(c.Search)
		preds = append(preds, func(p *domain.Project) bool {
			return strings.Contains(strings.ToLower(p.Title), q) ||
				strings.Contains(strings.ToLower(p.Description), q)
		})
	}

	if c.Category != "" {
		preds = append(preds, func(p *domain.Project) bool {
			return strings.EqualFold(p.Category, c.Category)
		})
	}

	if c.Location != "" {
		preds = append(preds, func(p *domain.Project) bool {
			return strings.EqualFold(p.Location.Country, c.Location)
		})
	}

	if c.Budget != "" {
		r, err := ParseBudgetToken(c.Budget)
		if err != nil {
			preds = append(preds, func(*domain.Project) bool { return false })
		} else {
			// Only the project's minimum budget is compared against the range.
			preds = append(preds, func(p *domain.Project) bool {
				return r.Contains(p.Budget.Min)
			})
		}
	}

	if !c.Date.IsZero() {
		preds = append(preds, func(p *domain.Project) bool {
			return !p.Deadline.IsZero() && !p.Deadline.Before(c.Date)
		})
	}

	return preds
}

// Filter returns the projects matching every active criterion, in input
// order. The input slice is not modified.
func Filter(projects []domain.Project, c FilterCriteria) []domain.Project {
	preds := c.Predicates()
	out := make([]domain.Project, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		if matchesAll(p, preds) {
			out = append(out, *p)
		}
	}
	return out
}

func matchesAll(p *domain.Project, preds []Predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}
