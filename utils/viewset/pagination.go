package viewset

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/facet-unt/departamentos-api/utils/response"
)

const (
	// DefaultPageSize applies when a viewset sets none
	DefaultPageSize = 10
	// MaxPageSize caps the page_size query parameter
	MaxPageSize = 100
)

// ErrInvalidPage is returned for a page outside 1..last.
var ErrInvalidPage = errors.New("invalid page")

// Page is one page of a list request.
type Page struct {
	Number int
	Size   int
	Total  int64
}

// NewPage reads page and page_size from the query. An empty result still
// has page 1.
func NewPage(c *fiber.Ctx, total int64, defaultSize int) (Page, error) {
	size := defaultSize
	if raw := c.Query("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			size = min(n, MaxPageSize)
		}
	}

	number := 1
	if raw := c.Query("page"); raw != "" && raw != "last" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, ErrInvalidPage
		}
		number = n
	}

	p := Page{Number: number, Size: size, Total: total}
	if c.Query("page") == "last" {
		p.Number = p.Last()
	}
	if p.Number > p.Last() {
		return Page{}, ErrInvalidPage
	}
	return p, nil
}

// Last is the number of the final page.
func (p Page) Last() int {
	if p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// Offset is the number of rows before the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Body builds the {count,next,previous,results} payload with absolute links.
func (p Page) Body(c *fiber.Ctx, results any) response.Page {
	body := response.Page{Count: p.Total, Results: results}
	if p.Number < p.Last() {
		next := pageURL(c, p.Number+1)
		body.Next = &next
	}
	if p.Number > 1 {
		prev := pageURL(c, p.Number-1)
		body.Previous = &prev
	}
	return body
}

// pageURL rewrites the page param of the current URL, dropping it for page 1.
func pageURL(c *fiber.Ctx, number int) string {
	u, err := url.Parse(c.BaseURL() + c.OriginalURL())
	if err != nil {
		return ""
	}
	q := u.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
