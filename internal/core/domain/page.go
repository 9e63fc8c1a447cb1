package domain

// DefaultPageSize is the number of applicants listed per page.
const DefaultPageSize = 5

// PageRequest holds the inputs of the filter, sort and paginate pipeline.
type PageRequest struct {
	// Search is matched caselessly against id, full name and status.
	// Empty matches everything.
	Search string

	// IncludeApproved keeps Approved records in the result when true.
	IncludeApproved bool

	// PageIndex is zero based.
	PageIndex int

	// PageSize is the number of records per page. Values below 1 use DefaultPageSize.
	PageSize int
}

// Page is the visible slice of the pipeline plus pagination metadata.
type Page struct {
	Items      []ApplicantRecord `json:"items"`
	PageIndex  int               `json:"page_index"`
	PageSize   int               `json:"page_size"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

// HasPrevious reports whether an earlier page exists.
func (p Page) HasPrevious() bool {
	return p.PageIndex > 0
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool {
	return p.PageIndex < p.TotalPages-1
}

// FirstItem returns the 1-based position of the first item on the page,
// or 0 when the page is empty.
func (p Page) FirstItem() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.PageIndex*p.PageSize + 1
}

// LastItem returns the 1-based position of the last item on the page.
func (p Page) LastItem() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.PageIndex*p.PageSize + len(p.Items)
}

// TotalPages returns ceil(totalItems/pageSize), never less than 1.
func TotalPages(totalItems, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPageIndex forces index into [0, totalPages-1].
func ClampPageIndex(index, totalPages int) int {
	if index >= totalPages {
		index = totalPages - 1
	}
	if index < 0 {
		return 0
	}
	return index
}
