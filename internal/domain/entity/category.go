package entity

// Category представляет категорию вопросов (только чтение, заполняется миграцией)
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"column:type;size:64;not null" json:"type"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// DefaultCategories возвращает набор категорий, которым заполняется пустая база
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
}

// CategoryTypes возвращает подписи категорий в исходном порядке
func CategoryTypes(categories []Category) []string {
	types := make([]string, len(categories))
	for i, c := range categories {
		types[i] = c.Type
	}
	return types
}
