package catalog

import "strings"

// matchesSubsequence reports whether every character of query appears in
// title in the same order, not necessarily adjacent. "nvf" matches
// "NATIVE VERSA FORK". An empty query matches everything.
func matchesSubsequence(title, query string) bool {
	t := strings.ToLower(title)
	q := strings.ToLower(query)

	offset := 0
	for _, ch := range q {
		i := strings.IndexRune(t[offset:], ch)
		if i == -1 {
			return false
		}
		offset += i + len(string(ch))
	}
	return true
}

// filterBySubsequence returns the products whose title matches query as a
// character subsequence.
func filterBySubsequence(products []*Product, query string) []*Product {
	matched := make([]*Product, 0, len(products))
	for _, p := range products {
		if matchesSubsequence(p.Title, query) {
			matched = append(matched, p)
		}
	}
	return matched
}
