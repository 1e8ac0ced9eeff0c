// Package pagination нарезает упорядоченные списки на страницы фиксированного размера.
package pagination

import "strconv"

// DefaultPageSize — размер страницы по умолчанию
const DefaultPageSize = 10

// ParsePage разбирает номер страницы из query-параметра.
// Пустое, нечисловое или меньшее 1 значение даёт первую страницу.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate возвращает элементы страницы page размером size.
// Никогда не возвращает больше size элементов; для страницы за пределами
// списка возвращается пустой (не nil) срез.
func Paginate[T any](items []T, page, size int) []T {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	// Сравнение с числом страниц до умножения: (page-1)*size переполняется для огромных page
	pages := (len(items) + size - 1) / size
	if page-1 >= pages {
		return []T{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
