package httpx

import "strconv"

// Page is one slice of a feed. A non-numeric or sub-1 ?page= falls back to
// the first page; a number past the end clamps to the last page.
type Page struct {
	Number   int
	NumPages int
	Count    int
	PerPage  int
	Offset   int
	HasPrev  bool
	HasNext  bool
	Prev     int
	Next     int
}

func parsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func paginate(raw string, count, perPage int) Page {
	numPages := (count + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}
	n := parsePageNumber(raw)
	if n > numPages {
		n = numPages
	}
	return Page{
		Number:   n,
		NumPages: numPages,
		Count:    count,
		PerPage:  perPage,
		Offset:   (n - 1) * perPage,
		HasPrev:  n > 1,
		HasNext:  n < numPages,
		Prev:     n - 1,
		Next:     n + 1,
	}
}
