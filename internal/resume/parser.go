package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"code.sajari.com/docconv"
)

// ErrInvalidPDF marks uploads that are not structurally a PDF. Handlers
// translate it into a user-facing 400.
var ErrInvalidPDF = errors.New("invalid PDF structure")

var pdfMagic = []byte("%PDF-")

// Extractor turns an uploaded resume into plain text. The concrete
// implementation shells out to document tooling, so handlers depend on this
// interface and tests substitute a stub.
type Extractor interface {
	ExtractText(filename string, r io.Reader) (string, error)
}

// Parser extracts resume text from PDF uploads using docconv.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// ExtractText validates the PDF header and extracts the document text.
// A payload without the PDF magic bytes fails with ErrInvalidPDF before any
// conversion tooling runs.
func (p *Parser) ExtractText(filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return "", ErrInvalidPDF
	}

	res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", true)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "pdf") {
			return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
		}
		return "", fmt.Errorf("convert document: %w", err)
	}
	return res.Body, nil
}
