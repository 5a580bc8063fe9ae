// internal/core/query_params.go
package core

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format of the deadline filter (an HTML date input).
const DateLayout = "2006-01-02"

// FilterParams lists the query parameters that make up FilterCriteria.
var FilterParams = map[string]bool{
	"search":   true,
	"category": true,
	"location": true,
	"budget":   true,
	"date":     true,
}

var ErrInvalidBudgetToken = errors.New("invalid budget range")

// FilterCriteria narrows the project list. A zero value in any field means
// no constraint from that field.
type FilterCriteria struct {
	Search   string
	Category string
	Location string
	Budget   string // range token: "<min>-<max>" or "<min>+"
	Date     time.Time
}

// IsEmpty reports whether no criterion is active.
func (c FilterCriteria) IsEmpty() bool {
	return c.Search == "" && c.Category == "" && c.Location == "" && c.Budget == "" && c.Date.IsZero()
}

// Values encodes the active criteria as query parameters for the upstream
// list endpoint.
func (c FilterCriteria) Values() url.Values {
	v := url.Values{}
	if c.Search != "" {
		v.Set("search", c.Search)
	}
	if c.Category != "" {
		v.Set("category", c.Category)
	}
	if c.Location != "" {
		v.Set("location", c.Location)
	}
	if c.Budget != "" {
		v.Set("budget", c.Budget)
	}
	if !c.Date.IsZero() {
		v.Set("date", c.Date.Format(DateLayout))
	}
	return v
}

// BudgetRange is a parsed budget token. Bounded is false for the "<min>+" form.
type BudgetRange struct {
	Min     float64
	Max     float64
	Bounded bool
}

// Contains reports whether amount lies in the range, bounds inclusive.
func (r BudgetRange) Contains(amount float64) bool {
	if amount < r.Min {
		return false
	}
	return !r.Bounded || amount <= r.Max
}

// ParseBudgetToken parses "1000-5000" or "5000+".
func ParseBudgetToken(token string) (BudgetRange, error) {
	token = strings.TrimSpace(token)
	if lower, ok := strings.CutSuffix(token, "+"); ok {
		min, err := parseBound(lower)
		if err != nil {
			return BudgetRange{}, fmt.Errorf("%w '%s': %v", ErrInvalidBudgetToken, token, err)
		}
		return BudgetRange{Min: min}, nil
	}

	lower, upper, found := strings.Cut(token, "-")
	if !found {
		return BudgetRange{}, fmt.Errorf("%w '%s': expected <min>-<max> or <min>+", ErrInvalidBudgetToken, token)
	}
	min, err := parseBound(lower)
	if err != nil {
		return BudgetRange{}, fmt.Errorf("%w '%s': %v", ErrInvalidBudgetToken, token, err)
	}
	max, err := parseBound(upper)
	if err != nil {
		return BudgetRange{}, fmt.Errorf("%w '%s': %v", ErrInvalidBudgetToken, token, err)
	}
	if max < min {
		return BudgetRange{}, fmt.Errorf("%w '%s': upper bound below lower bound", ErrInvalidBudgetToken, token)
	}
	return BudgetRange{Min: min, Max: max, Bounded: true}, nil
}

func parseBound(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bound '%s' is not a number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("bound '%s' is negative", s)
	}
	return n, nil
}

// ParseFilterCriteria extracts the project filters from query parameters.
// Returns the parsed criteria and any validation error.
func ParseFilterCriteria(queryParams url.Values) (*FilterCriteria, error) {
	c := &FilterCriteria{
		Search:   strings.TrimSpace(queryParams.Get("search")),
		Category: strings.TrimSpace(queryParams.Get("category")),
		Location: strings.TrimSpace(queryParams.Get("location")),
	}

	if budget := strings.TrimSpace(queryParams.Get("budget")); budget != "" {
		if _, err := ParseBudgetToken(budget); err != nil {
			return nil, fmt.Errorf("invalid 'budget' parameter: %w", err)
		}
		c.Budget = budget
	}

	if dateStr := strings.TrimSpace(queryParams.Get("date")); dateStr != "" {
		date, err := time.Parse(DateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'date' parameter: must be YYYY-MM-DD")
		}
		c.Date = date
	}

	return c, nil
}

// ParseViewOptions reads the presentation parameters "view" and "showAll".
func ParseViewOptions(queryParams url.Values) (ViewMode, bool, error) {
	mode := ViewGrid
	if v := queryParams.Get("view"); v != "" {
		m, err := ParseViewMode(v)
		if err != nil {
			return "", false, err
		}
		mode = m
	}

	showAll := false
	if s := queryParams.Get("showAll"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return "", false, fmt.Errorf("invalid 'showAll' parameter: must be a boolean")
		}
		showAll = b
	}
	return mode, showAll, nil
}

// IsFilterParam checks if a query parameter name belongs to the filter criteria.
func IsFilterParam(key string) bool {
	return FilterParams[strings.ToLower(key)]
}
