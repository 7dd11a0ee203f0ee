package sqlbuilder

const (
	// DefaultLimit is the page size used when the caller requests none.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of what the caller requests.
	MaxLimit = 50
)

// Page describes a bounded window over a result set. The zero value means
// "first page, default size". Page 1 is the first page; the offset formula is
// (number-1)*limit, so page 1 limit 10 covers rows 1-10 and page 2 rows 11-20
// with no overlap or gap.
type Page struct {
	Number int
	Limit  int
}

// NewPage returns a Page with defaults applied and the limit capped. Callers
// are expected to have range-checked their inputs already; this only fills
// zero values and enforces the hard cap.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
