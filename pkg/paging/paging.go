package paging

// DefaultPerPage размер страницы по умолчанию для списковых выдач
const DefaultPerPage = 5

// Params параметры постраничной выдачи после нормализации
type Params struct {
	Page    int // Номер страницы, начиная с 1
	PerPage int // Размер страницы
}

// Offset возвращает смещение для SQL LIMIT/OFFSET
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Normalize приводит запрошенные page/perPage к допустимым значениям.
// Страница вне диапазона [1, totalPages] прижимается к границе, а не
// возвращает ошибку или пустую выдачу. При totalCount = 0 остается
// одна пустая страница.
func Normalize(page, perPage int, totalCount int64) (Params, int) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	totalPages := TotalPages(totalCount, perPage)

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	return Params{Page: page, PerPage: perPage}, totalPages
}

// TotalPages возвращает ceil(totalCount / perPage), минимум 1
func TotalPages(totalCount int64, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	pages := int((totalCount + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}
