package usecase

// Paging defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps page and size to sane values; maxSize <= 0 means MaxPageSize
func NormalizePage(page, size, maxSize int) (int, int) {
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > maxSize {
		size = maxSize
	}
	return page, size
}

// Offset returns the row offset of a page
func Offset(page, size int) int {
	return (page - 1) * size
}

// TotalPages returns the page count needed to show count rows
func TotalPages(count int64, size int) int {
	if size <= 0 || count <= 0 {
		return 0
	}
	return int((count + int64(size) - 1) / int64(size))
}
