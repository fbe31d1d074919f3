package content

// AllCategories is the implicit filter value that matches every post.
const AllCategories = "All"

// Categories lists "All" followed by each distinct non-empty category in the
// order it first appears.
func Categories[T any](items []T, category func(T) string) []string {
	seen := make(map[string]bool)
	out := []string{AllCategories}
	for _, item := range items {
		c := category(item)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// FilterByCategory keeps the items whose category matches exactly. "All" and
// the empty string keep everything.
func FilterByCategory[T any](items []T, selected string, category func(T) string) []T {
	if selected == "" || selected == AllCategories {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if category(item) == selected {
			out = append(out, item)
		}
	}
	return out
}
