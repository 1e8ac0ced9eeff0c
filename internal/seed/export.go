package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
)

const sheetName = "Questions"

// WriteQuestions сохраняет вопросы в файл; формат определяется по расширению
func WriteQuestions(path string, questions []entity.Question) error {
	var write func(io.Writer, []entity.Question) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = WriteCSV
	case ".xlsx":
		write = WriteXLSX
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f, questions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV пишет вопросы в CSV со строкой заголовка
func WriteCSV(w io.Writer, questions []entity.Question) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, q := range questions {
		record := []string{
			sanitizeForExcel(q.Text),
			sanitizeForExcel(q.Answer),
			q.Category,
			strconv.Itoa(q.Difficulty),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX пишет вопросы в книгу Excel через StreamWriter
func WriteXLSX(w io.Writer, questions []entity.Question) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	// Заголовки
	headers := make([]interface{}, len(header))
	for i, h := range header {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, q := range questions {
		cell, err := excelize.CoordinatesToCellName(1, i+2) // 1 - заголовки
		if err != nil {
			return err
		}
		row := []interface{}{sanitizeForExcel(q.Text), sanitizeForExcel(q.Answer), q.Category, q.Difficulty}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush xlsx: %w", err)
	}
	return f.Write(w)
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
