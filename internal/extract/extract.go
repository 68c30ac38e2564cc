// Package extract turns raw uploaded bytes into plain text. Extraction is
// best-effort by design: unreadable input degrades to empty text, it never
// returns an error. Callers decide whether empty text is actionable.
package extract

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Format is the file-type hint derived from an object key suffix.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatTXT     Format = "txt"
	FormatCSV     Format = "csv"
	FormatUnknown Format = ""
)

// DetectFormat maps an object key to a Format by its suffix,
// case-insensitively. Anything outside .pdf/.txt/.csv is FormatUnknown.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".txt":
		return FormatTXT
	case ".csv":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// Result holds the extracted text plus format-specific metadata.
// Pages is only set for PDFs.
type Result struct {
	Text  string
	Pages int
}

// File extracts plain text from raw according to format. It is a pure
// function of its inputs: no I/O, no error return, zero-length input yields
// an empty Result.
func File(raw []byte, format Format) Result {
	switch format {
	case FormatTXT:
		return Result{Text: decodeLossy(raw)}
	case FormatCSV:
		return Result{Text: flattenCSV(decodeLossy(raw))}
	case FormatPDF:
		text, pages := pdfText(raw)
		return Result{Text: text, Pages: pages}
	default:
		return Result{}
	}
}

// decodeLossy interprets raw as UTF-8, dropping invalid byte sequences
// outright rather than replacing them, and strips a leading BOM.
func decodeLossy(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	return strings.ToValidUTF8(string(raw), "")
}

// flattenCSV collapses a CSV document into one flat blob: fields joined by
// single spaces, rows joined by single spaces. Column structure is discarded
// on purpose; only the words matter downstream.
func flattenCSV(content string) string {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Best effort: keep whatever parsed before the malformed row.
			break
		}
		rows = append(rows, strings.Join(record, " "))
	}
	return strings.Join(rows, " ")
}

// pdfText extracts per-page plain text and joins the pages with single
// spaces. A page that yields no text (a scanned image, a parse failure)
// contributes an empty string. The page count comes from pdfcpu under
// relaxed validation, so it survives files the text pass chokes on.
func pdfText(raw []byte) (string, int) {
	if len(raw) == 0 {
		return "", 0
	}
	pages := pageCount(raw)

	text := func() (joined string) {
		// The text layer panics on some malformed content streams;
		// degrade those files to empty text instead.
		defer func() {
			if recover() != nil {
				joined = ""
			}
		}()
		r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
		if err != nil {
			return ""
		}
		texts := make([]string, 0, r.NumPage())
		for i := 1; i <= r.NumPage(); i++ {
			texts = append(texts, pageText(r, i))
		}
		return strings.Join(texts, " ")
	}()

	return text, pages
}

func pageText(r *pdf.Reader, n int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	p := r.Page(n)
	if p.V.IsNull() {
		return ""
	}
	t, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return t
}

func pageCount(raw []byte) int {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(raw), conf)
	if err != nil {
		return 0
	}
	return n
}
