package query

// ResolveSort maps a sort keyword to its ORDER BY clause. Unknown or empty
// keywords fall back to newest-first. "relevant" is an alias of "recent": the
// original system never implemented relevance ranking.
func ResolveSort(key string) string {
	switch key {
	case "oldest":
		return "created_at ASC"
	case "salary_high":
		return "salary_max DESC, salary_min DESC"
	case "salary_low":
		return "salary_min ASC, salary_max ASC"
	case "alphabetical":
		return "title ASC"
	case "recent", "relevant":
		return "created_at DESC"
	default:
		return "created_at DESC"
	}
}
