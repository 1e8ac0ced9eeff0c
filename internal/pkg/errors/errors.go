package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	// Для удаления вопроса хендлер отвечает на неё 422, а не 404.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyResult используется, когда запрошенная страница списка пуста.
	ErrEmptyResult = errors.New("empty result")
)
