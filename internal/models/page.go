package models

// Pagination query parameter defaults and bounds. The defaults apply only
// to absent query parameters; explicit out-of-range values clamp to the
// nearest bound rather than error so oversized requests cannot exhaust the
// server.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 100
)

// PageRequest holds normalized page/limit query parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit into their allowed ranges.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < MinPageSize {
		p.Limit = MinPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized request.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is a single page of results plus the totals the client needs to
// render pagination controls.
type Page[T any] struct {
	Docs        []T   `json:"docs"`
	TotalDocs   int64 `json:"totalDocs"`
	Limit       int   `json:"limit"`
	Page        int   `json:"page"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPage assembles a Page from one page of docs and the total match count.
func NewPage[T any](docs []T, total int64, req PageRequest) Page[T] {
	req = req.Normalize()
	if docs == nil {
		docs = []T{}
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	if totalPages < 1 {
		totalPages = 1
	}

	return Page[T]{
		Docs:        docs,
		TotalDocs:   total,
		Limit:       req.Limit,
		Page:        req.Page,
		TotalPages:  totalPages,
		HasNextPage: req.Page < totalPages,
		HasPrevPage: req.Page > 1,
	}
}
