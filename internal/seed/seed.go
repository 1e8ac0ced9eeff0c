// Package seed импортирует и экспортирует вопросы в файлах CSV и XLSX.
// Колонки: question, answer, category, difficulty; строка заголовка необязательна.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
)

// ErrUnsupportedFormat возвращается для файлов с расширением, отличным от .csv и .xlsx
var ErrUnsupportedFormat = errors.New("unsupported file format")

var header = []string{"question", "answer", "category", "difficulty"}

// ReadQuestions читает вопросы из файла; формат определяется по расширению
func ReadQuestions(path string) ([]entity.Question, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		return readWorkbook(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadCSV читает вопросы из CSV
func ReadCSV(r io.Reader) ([]entity.Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return parseRows(rows)
}

// ReadXLSX читает вопросы с первого листа книги Excel
func ReadXLSX(r io.Reader) ([]entity.Question, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]entity.Question, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

// parseRows разбирает строки таблицы. Пустые строки пропускаются,
// первая строка считается заголовком, если её последняя колонка не число.
func parseRows(rows [][]string) ([]entity.Question, error) {
	questions := make([]entity.Question, 0, len(rows))
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if i == 0 && isHeader(row) {
			continue
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+1, len(header), len(row))
		}

		q := entity.Question{
			Text:     strings.TrimSpace(row[0]),
			Answer:   strings.TrimSpace(row[1]),
			Category: strings.TrimSpace(row[2]),
		}
		difficulty, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil || difficulty < 1 {
			return nil, fmt.Errorf("row %d: invalid difficulty %q", i+1, row[3])
		}
		q.Difficulty = difficulty

		if q.Text == "" || q.Answer == "" || q.Category == "" {
			return nil, fmt.Errorf("row %d: question, answer and category are required", i+1)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func isHeader(row []string) bool {
	if len(row) < len(header) {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[3]))
	return err != nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
