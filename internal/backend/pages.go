package backend

import (
	"fmt"
	"strconv"
	"strings"
)

// PageSelector selects pages to extract from: either every page, or an
// explicit ordered set of 1-based page numbers.
type PageSelector struct {
	All   bool
	Pages []int
}

// AllPages selects every page.
func AllPages() PageSelector {
	return PageSelector{All: true}
}

// ParsePages parses the --pages flag value: "all", "N", or "N,M,...".
func ParsePages(s string) (PageSelector, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllPages(), nil
	}
	parts := strings.Split(s, ",")
	pages := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return PageSelector{}, fmt.Errorf("invalid page number %q", p)
		}
		if n < 1 {
			return PageSelector{}, fmt.Errorf("page numbers are 1-based, got %d", n)
		}
		pages = append(pages, n)
	}
	return PageSelector{Pages: pages}, nil
}

// LooksLikePageList reports whether s could only be a page selection,
// i.e. comma-separated digits. Used to disambiguate the second positional
// CLI argument, which historically doubled as a pages parameter.
func LooksLikePageList(s string) bool {
	if !strings.Contains(s, ",") {
		return false
	}
	stripped := strings.ReplaceAll(strings.ReplaceAll(s, ",", ""), " ", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Max returns the largest selected page, or 0 when all pages are selected.
func (p PageSelector) Max() int {
	max := 0
	for _, n := range p.Pages {
		if n > max {
			max = n
		}
	}
	return max
}

// String renders the selector in the "all" / "1,2,3" form the backend
// CLIs expect.
func (p PageSelector) String() string {
	if p.All {
		return "all"
	}
	parts := make([]string, len(p.Pages))
	for i, n := range p.Pages {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
