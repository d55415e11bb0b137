package pagination

// PostsPerPage is the fixed page size for every feed view.
const PostsPerPage = 10

// Page describes one window of a paginated listing.
type Page struct {
	Number int   `json:"number"`
	Size   int   `json:"size"`
	Count  int   `json:"count"`
	Total  int64 `json:"total"`
}

// Paginate computes the page window for the given inputs. Out-of-range page
// numbers clamp to the nearest valid page instead of erroring: anything below
// 1 becomes 1, anything past the last page becomes the last page. An empty
// listing yields page 1 of 1 with zero rows.
func Paginate(pageSize, pageNumber int, total int64) Page {
	if pageSize < 1 {
		pageSize = PostsPerPage
	}

	count := int((total + int64(pageSize) - 1) / int64(pageSize))
	if count < 1 {
		count = 1
	}

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > count {
		pageNumber = count
	}

	return Page{
		Number: pageNumber,
		Size:   pageSize,
		Count:  count,
		Total:  total,
	}
}

// Offset is the row offset of the page's first item.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool {
	return p.Number < p.Count
}

// HasPrevious reports whether an earlier page exists.
func (p Page) HasPrevious() bool {
	return p.Number > 1
}
