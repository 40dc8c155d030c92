package pagination

import (
	"errors"
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ErrInvalidPage is returned for malformed or out-of-range page numbers.
var ErrInvalidPage = errors.New("invalid page")

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

var defaultSizes = PageSizeConfig{Default: DefaultPageSize, Max: MaxPageSize}

// Request is a normalized page request.
type Request struct {
	Number int
	Size   int
}

func (r Request) Offset() int {
	return (r.Number - 1) * r.Size
}

func (r Request) Limit() int {
	return r.Size
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// Parse reads "page" and "page_size" from query values. A missing page is
// page 1; a non-numeric or non-positive page is ErrInvalidPage. page_size
// is clamped rather than rejected.
func Parse(q url.Values) (Request, error) {
	req := Request{Number: 1, Size: defaultSizes.Default}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Request{}, ErrInvalidPage
		}
		req.Number = n
	}

	if raw := q.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Request{}, ErrInvalidPage
		}
		req.Size = ClampPageSize(n, defaultSizes)
	}

	// the offset must fit in an int
	if req.Number-1 > math.MaxInt/req.Size {
		return Request{}, ErrInvalidPage
	}

	return req, nil
}

// Page is the JSON envelope returned by list endpoints.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Validate rejects page numbers past the last page. An empty result set
// only accepts page 1.
func (r Request) Validate(count int) error {
	if r.Number == 1 {
		return nil
	}
	if r.Size <= 0 {
		return ErrInvalidPage
	}
	pages := (count + r.Size - 1) / r.Size
	if r.Number-1 >= pages {
		return ErrInvalidPage
	}
	return nil
}

// NewPage builds the envelope. base is the request URL; next/previous keep
// every query parameter and replace only "page".
func NewPage[T any](base *url.URL, req Request, count int, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	p := Page[T]{Count: count, Results: results}

	if req.Number*req.Size < count {
		next := pageURL(base, req.Number+1)
		p.Next = &next
	}
	if req.Number > 1 {
		prev := pageURL(base, req.Number-1)
		p.Previous = &prev
	}
	return p
}

func pageURL(base *url.URL, number int) string {
	u := *base
	q := u.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
