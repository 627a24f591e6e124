package catalog

import "strings"

const maxMatches = 3

// Match returns the products whose titles appear, case-insensitively, inside
// the query text, in snapshot order, capped at three. An empty snapshot or no
// matching title yields an empty result.
func Match(query string, snapshot []Product) []Product {
	q := strings.ToLower(query)

	var matched []Product
	for _, p := range snapshot {
		title := strings.ToLower(strings.TrimSpace(p.Title))
		if title == "" {
			continue
		}
		if strings.Contains(q, title) {
			matched = append(matched, p)
			if len(matched) == maxMatches {
				break
			}
		}
	}
	return matched
}
