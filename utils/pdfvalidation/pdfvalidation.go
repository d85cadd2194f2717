package pdfvalidation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFLimits defines the validation limits for PDF uploads
type PDFLimits struct {
	MaxFileSizeMB    int    // Maximum file size in MB
	MaxPages         int    // Maximum number of pages
	DocumentTypeName string // For error messages
}

// ResolucionLimits apply to resolucion attachments
var ResolucionLimits = PDFLimits{
	MaxFileSizeMB:    20,
	MaxPages:         200,
	DocumentTypeName: "resolución",
}

// ErrInvalidPDF wraps every rejection so callers can tell it from I/O errors
var ErrInvalidPDF = errors.New("invalid pdf")

// ValidationResult contains the result of PDF validation
type ValidationResult struct {
	PageCount int
	FileSize  int64
	Content   []byte
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPDF, fmt.Sprintf(format, args...))
}

// Message strips the sentinel prefix for field errors.
func Message(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidPDF.Error()+": ")
}

// ValidatePDFFile reads an uploaded file and validates it against limits
func ValidatePDFFile(file *multipart.FileHeader, limits PDFLimits) (*ValidationResult, error) {
	maxSize := int64(limits.MaxFileSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		return nil, invalid("File size exceeds maximum allowed size of %dMB", limits.MaxFileSizeMB)
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return nil, invalid("Only PDF files are supported")
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ValidatePDFBytes(content, limits)
}

// ValidatePDFBytes validates PDF content bytes against the given limits
func ValidatePDFBytes(content []byte, limits PDFLimits) (*ValidationResult, error) {
	result := &ValidationResult{
		FileSize: int64(len(content)),
		Content:  content,
	}

	if result.FileSize > int64(limits.MaxFileSizeMB)*1024*1024 {
		return nil, invalid("File size exceeds maximum allowed size of %dMB", limits.MaxFileSizeMB)
	}

	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return nil, invalid("Invalid PDF file: missing PDF header")
	}

	pageCount, err := getPDFPageCount(content)
	if err != nil {
		return nil, invalid("Failed to read PDF: %v", err)
	}
	result.PageCount = pageCount

	switch {
	case pageCount == 0:
		return nil, invalid("PDF has no pages")
	case pageCount > limits.MaxPages:
		return nil, invalid("PDF has %d pages, which exceeds the maximum of %d pages for %s",
			pageCount, limits.MaxPages, limits.DocumentTypeName)
	}

	return result, nil
}

// sanitizePDF removes trailing garbage data after the last %%EOF
func sanitizePDF(content []byte) []byte {
	eofMarker := []byte("%%EOF")
	lastEOF := bytes.LastIndex(content, eofMarker)
	if lastEOF == -1 {
		return content
	}

	pdfEnd := lastEOF + len(eofMarker)
	for pdfEnd < len(content) && (content[pdfEnd] == '\n' || content[pdfEnd] == '\r') {
		pdfEnd++
	}
	return content[:pdfEnd]
}

// getPDFPageCount returns the number of pages in a PDF
func getPDFPageCount(content []byte) (n int, err error) {
	// The parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	content = sanitizePDF(content)
	pdfReader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse PDF: %w", err)
	}

	return pdfReader.NumPage(), nil
}
