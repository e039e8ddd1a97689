// Package dnaparse extracts text from uploaded lab report PDFs and parses
// genetic results out of it. Lab PDFs vary widely, so extraction tries a
// sequence of methods and reports how much it trusts the outcome.
package dnaparse

import (
	"bytes"
	"compress/zlib"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Extraction method names, recorded on the generated report.
const (
	MethodTextObjects  = "pdf_text_objects"
	MethodStringScrape = "pdf_string_scrape"
	MethodPlainText    = "plain_text"
)

// Extraction holds the text recovered from a document and how it was recovered.
type Extraction struct {
	Text       string
	Method     string
	Confidence float64
}

var (
	pdfStreamRe = regexp.MustCompile(`(?s)stream\r?\n(.*?)endstream`)
	pdfTextOpRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*T[jJ]`)
	parenRe     = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)
)

// ErrNoText is returned when no method recovers usable text.
var ErrNoText = errors.New("no text could be extracted from document")

// ExtractText recovers text from PDF bytes, trying the most structured
// method first and degrading to cruder ones.
func ExtractText(data []byte) (*Extraction, error) {
	if len(data) == 0 {
		return nil, ErrNoText
	}

	if text := extractTextObjects(data); usable(text) {
		return &Extraction{Text: text, Method: MethodTextObjects, Confidence: 0.9}, nil
	}

	if text := extractParenStrings(data); usable(text) {
		return &Extraction{Text: text, Method: MethodStringScrape, Confidence: 0.6}, nil
	}

	if text := extractPrintableRuns(data); usable(text) {
		return &Extraction{Text: text, Method: MethodPlainText, Confidence: 0.4}, nil
	}

	return nil, ErrNoText
}

// usable requires enough recovered text to plausibly contain results.
func usable(text string) bool {
	return len(strings.TrimSpace(text)) >= 20
}

// extractTextObjects decompresses PDF content streams and collects the
// arguments of Tj/TJ text-showing operators.
func extractTextObjects(data []byte) string {
	var sb strings.Builder

	for _, match := range pdfStreamRe.FindAllSubmatch(data, -1) {
		stream := match[1]

		// Content streams are usually Flate-compressed; fall back to the
		// raw bytes when they are not.
		if inflated, err := inflate(stream); err == nil {
			stream = inflated
		}

		for _, op := range pdfTextOpRe.FindAllSubmatch(stream, -1) {
			sb.WriteString(unescapePDFString(string(op[1])))
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// extractParenStrings scrapes every parenthesized string literal in the
// document, compressed streams included. Noisier than the text-object
// scan but survives odd operator usage.
func extractParenStrings(data []byte) string {
	var sb strings.Builder

	scan := func(chunk []byte) {
		for _, match := range parenRe.FindAllSubmatch(chunk, -1) {
			s := unescapePDFString(string(match[1]))
			if strings.TrimSpace(s) == "" {
				continue
			}
			sb.WriteString(s)
			sb.WriteByte('\n')
		}
	}

	scan(data)
	for _, match := range pdfStreamRe.FindAllSubmatch(data, -1) {
		if inflated, err := inflate(match[1]); err == nil {
			scan(inflated)
		}
	}

	return sb.String()
}

// extractPrintableRuns keeps runs of printable bytes, which handles
// plain-text uploads and PDFs with uncompressed text.
func extractPrintableRuns(data []byte) string {
	var sb strings.Builder
	var run []byte

	flush := func() {
		if len(run) >= 4 {
			sb.Write(run)
			sb.WriteByte('\n')
		}
		run = run[:0]
	}

	for _, b := range data {
		if b == '\n' || b == '\r' {
			flush()
			continue
		}
		if b >= 0x20 && b < 0x7f {
			run = append(run, b)
			continue
		}
		flush()
	}
	flush()

	return sb.String()
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// unescapePDFString resolves the escape sequences PDF string literals use.
func unescapePDFString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		default:
			sb.WriteByte(s[i])
		}
	}

	return sb.String()
}
