package quizmanager

import (
	"math/rand"
	"strings"
)

// AllCategoriesType — значение quiz_category.type, которым фронтенд обозначает «все категории»
const AllCategoriesType = "click"

// CategorySelector задаёт пул вопросов викторины: все категории или одна конкретная
type CategorySelector struct {
	All        bool
	CategoryID string
}

// AllCategories возвращает селектор по всем категориям
func AllCategories() CategorySelector {
	return CategorySelector{All: true}
}

// ForCategory возвращает селектор для одной категории
func ForCategory(categoryID string) CategorySelector {
	return CategorySelector{CategoryID: strings.TrimSpace(categoryID)}
}

// ParseCategorySelector переводит пару (id, type) из запроса в селектор.
// «Все категории» — это type == "click" или id == "0".
func ParseCategorySelector(id, categoryType string) CategorySelector {
	id = strings.TrimSpace(id)
	if categoryType == AllCategoriesType || id == "0" {
		return AllCategories()
	}
	return ForCategory(id)
}

// RandomSource — источник случайности для выбора вопроса; подменяется в тестах
type RandomSource interface {
	// IntN возвращает число из [0, n)
	IntN(n int) int
}

// globalRand использует потокобезопасный глобальный генератор math/rand
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.Intn(n)
}
