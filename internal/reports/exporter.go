package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders a table in one of the supported formats.
type Exporter interface {
	Export(format string, t Table, timestamp string) (*File, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) Export(format string, t Table, timestamp string) (*File, error) {
	var (
		data []byte
		mime string
		err  error
	)
	switch format {
	case FormatCSV:
		data, err = e.csv(t)
		mime = mimeCSV
	case FormatExcel:
		data, err = e.excel(t)
		mime = mimeExcel
	case FormatPDF:
		data, err = e.pdf(t)
		mime = mimePDF
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s as %s: %w", t.Name, format, err)
	}
	return &File{
		Data:     data,
		Filename: fmt.Sprintf("%s_%s.%s", t.Name, timestamp, format),
		MIME:     mime,
	}, nil
}

func (e *exporter) csv(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) excel(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Name
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) pdf(t Table) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, t.Title)
	pdf.Ln(10)

	widths := t.Widths
	if len(widths) != len(t.Headers) {
		widths = make([]float64, len(t.Headers))
		for i := range widths {
			widths[i] = 270 / float64(len(t.Headers))
		}
	}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range t.Headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	// gofpdf core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 8)
	for _, row := range t.Rows {
		for i, v := range row {
			if i >= len(widths) {
				break
			}
			pdf.CellFormat(widths[i], 6, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
