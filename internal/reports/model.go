package reports

// Report format constants
const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

const (
	mimeCSV   = "text/csv"
	mimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF   = "application/pdf"
)

// Table is a rendered report: one header row and string cells, ready for any
// output format.
type Table struct {
	Name    string // file name stem and sheet name
	Title   string
	Headers []string
	Widths  []float64 // PDF column widths in mm
	Rows    [][]string
}

// File is an exported report.
type File struct {
	Data     []byte
	Filename string
	MIME     string
}

// NormalizeFormat accepts the format aliases clients send and returns the
// canonical name, or false for anything unsupported.
func NormalizeFormat(format string) (string, bool) {
	switch format {
	case "", FormatCSV:
		return FormatCSV, true
	case FormatExcel, "excel":
		return FormatExcel, true
	case FormatPDF:
		return FormatPDF, true
	}
	return "", false
}
