package repository

import "strings"

// Pagination selects one page of an ordered result set. Page is 1-based.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of rows preceding the page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// likeEscape is the ESCAPE character used with containsPattern. It is not a
// backslash because MySQL treats backslashes inside string literals specially.
const likeEscape = "!"

// containsPattern builds a lower-cased LIKE pattern matching term anywhere.
func containsPattern(term string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
