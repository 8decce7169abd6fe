package store

// Pagination bounds for list operations.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is an offset/limit window over an id-ordered listing.
type Page struct {
	Offset int
	Limit  int
}

// DefaultPage returns the first page with the default limit.
func DefaultPage() Page {
	return Page{Offset: 0, Limit: DefaultLimit}
}

// Normalize clamps the window into range: negative offsets become 0,
// non-positive limits become DefaultLimit, and limits above MaxLimit are capped.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Window applies the page to n items and returns the [start, end) bounds.
func (p Page) Window(n int) (start, end int) {
	p = p.Normalize()
	start = min(p.Offset, n)
	end = min(start+p.Limit, n)
	return start, end
}
