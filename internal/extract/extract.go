// Package extract turns uploaded files into plain text for the retrieval
// engine. Format selection happens here, once, by file extension; the engine
// itself only ever sees text.
package extract

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat is returned for formats that need an external
// converter before they can be used as context.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format is a document content format. The set is closed: adding a format
// means adding a case here, never branching on extensions elsewhere.
type Format int

const (
	PlainText Format = iota
	Markdown
	JSON
	CSV
	PDF
	Docx
	Xlsx
	Unknown
)

// String returns the format name for messages and logs.
func (f Format) String() string {
	switch f {
	case PlainText:
		return "text"
	case Markdown:
		return "markdown"
	case JSON:
		return "json"
	case CSV:
		return "csv"
	case PDF:
		return "pdf"
	case Docx:
		return "docx"
	case Xlsx:
		return "xlsx"
	default:
		return "unknown"
	}
}

// Detect maps a file name to its content format by extension.
func Detect(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".log":
		return PlainText
	case ".md", ".markdown":
		return Markdown
	case ".json":
		return JSON
	case ".csv":
		return CSV
	case ".pdf":
		return PDF
	case ".docx":
		return Docx
	case ".xlsx":
		return Xlsx
	default:
		return Unknown
	}
}

// Text extracts plain text from file data according to the format detected
// from name. Binary formats (pdf, docx, xlsx) are not decoded here and return
// ErrUnsupportedFormat; they must be converted upstream.
func Text(name string, data []byte) (string, error) {
	format := Detect(name)
	switch format {
	case PlainText, Markdown, Unknown:
		return plainText(data)
	case JSON:
		return jsonText(data)
	case CSV:
		return csvText(data)
	default:
		return "", fmt.Errorf("%w: %s (convert %q to text first)", ErrUnsupportedFormat, format, name)
	}
}

func plainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("file content is not valid UTF-8")
	}
	return string(data), nil
}

// jsonText pretty-prints JSON so structure survives chunking as line breaks.
func jsonText(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return buf.String(), nil
}

var imageURLPattern = regexp.MustCompile(`https?://\S+\.(?:png|jpg|jpeg|gif)`)

// ImageURLs returns the image links found in message text, in order of
// appearance, so the UI can surface them alongside the message.
func ImageURLs(text string) []string {
	return imageURLPattern.FindAllString(text, -1)
}

// csvText renders each record as one comma-separated line.
func csvText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("file content is not valid UTF-8")
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("invalid CSV: %w", err)
	}
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(strings.Join(rec, ", "))
		b.WriteByte('\n')
	}
	return b.String(), nil
}
