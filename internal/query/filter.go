package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Posted-date window keywords accepted on the listing endpoint.
const (
	PostedToday = "today"
	Posted3Days = "3days"
	PostedWeek  = "week"
	PostedMonth = "month"
)

// Filters holds the recognized listing filter parameters. A zero field means
// the parameter was not supplied and imposes no constraint.
type Filters struct {
	Search   string
	Location string
	Type     string
	Level    string
	Category string
	Remote   bool

	SalaryMin *int
	SalaryMax *int

	// One of the Posted* keywords, or empty. recentlyPosted=true maps to a
	// 7-day window; an explicit postedDate wins over it.
	PostedWithin string
}

// ParseFilters reads the filter parameters from a query string. Malformed
// values degrade to absent, never to an error.
func ParseFilters(values url.Values) Filters {
	f := Filters{
		Search:   strings.TrimSpace(values.Get("search")),
		Location: strings.TrimSpace(values.Get("location")),
		Type:     values.Get("type"),
		Level:    values.Get("level"),
		Category: values.Get("category"),
		Remote:   values.Get("remote") == "true",
	}

	f.SalaryMin = parseOptionalInt(values.Get("salaryMin"))
	f.SalaryMax = parseOptionalInt(values.Get("salaryMax"))

	if values.Get("recentlyPosted") == "true" {
		f.PostedWithin = PostedWeek
	}
	switch posted := values.Get("postedDate"); posted {
	case PostedToday, Posted3Days, PostedWeek, PostedMonth:
		f.PostedWithin = posted
	}

	return f
}

func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// Condition is one AND-combined predicate fragment.
type Condition struct {
	Expr string
	Args []any
}

// Conditions compiles the filters into predicate fragments. The free-text
// search fields OR together inside a single fragment; remote extends that OR
// set rather than replacing it. Posted-date cutoffs are computed from now so
// callers (and tests) control the clock.
func (f Filters) Conditions(now time.Time) []Condition {
	var conds []Condition

	textOR := make([]string, 0, 5)
	var textArgs []any
	if f.Search != "" {
		term := "%" + f.Search + "%"
		textOR = append(textOR,
			"title ILIKE ?",
			"company_name ILIKE ?",
			"description ILIKE ?",
			"array_to_string(required_skills, ' ') ILIKE ?",
		)
		textArgs = append(textArgs, term, term, term, term)
	}
	if f.Remote {
		textOR = append(textOR, "location ILIKE ?")
		textArgs = append(textArgs, "%remote%")
	}
	if len(textOR) > 0 {
		conds = append(conds, Condition{
			Expr: "(" + strings.Join(textOR, " OR ") + ")",
			Args: textArgs,
		})
	}

	if f.Location != "" {
		conds = append(conds, Condition{Expr: "location ILIKE ?", Args: []any{"%" + f.Location + "%"}})
	}
	if f.Type != "" {
		conds = append(conds, Condition{Expr: "employment_type = ?", Args: []any{f.Type}})
	}
	if f.Level != "" {
		conds = append(conds, Condition{Expr: "experience_level = ?", Args: []any{f.Level}})
	}
	if f.Category != "" {
		conds = append(conds, Condition{Expr: "category = ?", Args: []any{f.Category}})
	}

	// Floor on salary_min and ceiling on salary_max, not range overlap.
	if f.SalaryMin != nil {
		conds = append(conds, Condition{Expr: "salary_min >= ?", Args: []any{*f.SalaryMin}})
	}
	if f.SalaryMax != nil {
		conds = append(conds, Condition{Expr: "salary_max <= ?", Args: []any{*f.SalaryMax}})
	}

	if cutoff, ok := f.postedCutoff(now); ok {
		conds = append(conds, Condition{Expr: "created_at >= ?", Args: []any{cutoff}})
	}

	return conds
}

func (f Filters) postedCutoff(now time.Time) (time.Time, bool) {
	switch f.PostedWithin {
	case PostedToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case Posted3Days:
		return now.AddDate(0, 0, -3), true
	case PostedWeek:
		return now.AddDate(0, 0, -7), true
	case PostedMonth:
		return now.AddDate(0, 0, -30), true
	}
	return time.Time{}, false
}

// Scope applies the compiled conditions to a gorm query.
func (f Filters) Scope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, cond := range f.Conditions(now) {
			db = db.Where(cond.Expr, cond.Args...)
		}
		return db
	}
}

// CacheKey renders the filters into a stable fragment for list-cache keys.
// Values are re-encoded as canonical query parameters so that every distinct
// filter combination maps to a distinct key, whatever characters the values
// contain.
func (f Filters) CacheKey() string {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Location != "" {
		v.Set("location", f.Location)
	}
	if f.Type != "" {
		v.Set("type", f.Type)
	}
	if f.Level != "" {
		v.Set("level", f.Level)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Remote {
		v.Set("remote", "true")
	}
	if f.SalaryMin != nil {
		v.Set("salaryMin", strconv.Itoa(*f.SalaryMin))
	}
	if f.SalaryMax != nil {
		v.Set("salaryMax", strconv.Itoa(*f.SalaryMax))
	}
	if f.PostedWithin != "" {
		v.Set("postedDate", f.PostedWithin)
	}
	return v.Encode()
}
