package normalization

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportFormat формат экспорта
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
)

// ExportedRow экспортируемая строка результата
type ExportedRow struct {
	ID            int     `json:"id"`
	Input         string  `json:"input"`
	Normalized    string  `json:"normalized"`
	Language      string  `json:"language"`
	Confidence    float64 `json:"confidence"`
	Persons       int     `json:"persons"`
	Organizations string  `json:"organizations"`
	Success       bool    `json:"success"`
	DurationMS    int64   `json:"duration_ms"`
}

// Exporter выгружает результаты пакетной нормализации в файл
type Exporter struct{}

// NewExporter создает новый экспортер
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export выгружает результаты в указанном формате
func (e *Exporter) Export(filename string, format ExportFormat, batch *BatchResult) error {
	switch format {
	case FormatJSON:
		return e.ExportToJSON(filename, batch)
	case FormatCSV:
		return e.ExportToCSV(filename, batch)
	case FormatExcel:
		return e.ExportToExcel(filename, batch)
	}
	return fmt.Errorf("unknown export format: %s", format)
}

// ExportToJSON экспортирует результаты в JSON
func (e *Exporter) ExportToJSON(filename string, batch *BatchResult) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	result := map[string]interface{}{
		"exported_at": time.Now().Format(time.RFC3339),
		"total":       len(batch.Items),
		"items":       e.rows(batch),
	}

	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ExportToCSV экспортирует результаты в CSV
func (e *Exporter) ExportToCSV(filename string, batch *BatchResult) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"ID", "Input", "Normalized", "Language", "Confidence",
		"Persons", "Organizations", "Success", "Duration MS",
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, row := range e.rows(batch) {
		record := []string{
			fmt.Sprintf("%d", row.ID),
			row.Input,
			row.Normalized,
			row.Language,
			fmt.Sprintf("%.2f", row.Confidence),
			fmt.Sprintf("%d", row.Persons),
			row.Organizations,
			fmt.Sprintf("%t", row.Success),
			fmt.Sprintf("%d", row.DurationMS),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}

// ExportToExcel экспортирует результаты в Excel
func (e *Exporter) ExportToExcel(filename string, batch *BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Normalized Names"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headers := []string{
		"ID", "Input", "Normalized", "Language", "Confidence",
		"Persons", "Organizations", "Success", "Duration MS",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range e.rows(batch) {
		rowNum := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), row.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), row.Input)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), row.Normalized)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowNum), row.Language)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowNum), row.Confidence)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowNum), row.Persons)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowNum), row.Organizations)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowNum), row.Success)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowNum), row.DurationMS)
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

func (e *Exporter) rows(batch *BatchResult) []ExportedRow {
	rows := make([]ExportedRow, 0, len(batch.Items))
	for _, item := range batch.Items {
		row := ExportedRow{
			ID:         item.ID,
			Input:      item.Input,
			DurationMS: item.DurationMS,
		}
		if item.Result != nil {
			row.Normalized = item.Result.Normalized
			row.Language = item.Result.Language
			row.Confidence = item.Result.Confidence
			row.Persons = len(item.Result.Persons)
			row.Organizations = strings.Join(item.Result.Organizations, "; ")
			row.Success = item.Result.Success
		}
		rows = append(rows, row)
	}
	return rows
}
